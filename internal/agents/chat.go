package agents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/cache"
	"github.com/dverhoeven/folioagent/internal/models"
	"github.com/dverhoeven/folioagent/internal/prompt"
	"github.com/dverhoeven/folioagent/internal/providers/llm"
	mongorepo "github.com/dverhoeven/folioagent/internal/repositories/mongo"
	pgrepo "github.com/dverhoeven/folioagent/internal/repositories/postgres"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	chatHistoryWindow   = 10
	systemPromptTTL     = 5 * time.Minute
	maxVisitorMsgLength = 4000
)

// ChatAgent answers portfolio visitors on the owner's behalf. The rendered
// system prompt is cached briefly so each message does not re-read the whole
// profile; cache trouble falls back to recomputing.
type ChatAgent struct {
	sessions mongorepo.ChatSessionRepository
	messages mongorepo.ChatMessageRepository
	owners   pgrepo.OwnerRepository
	skills   pgrepo.SkillRepository
	projects pgrepo.ProjectRepository
	model    llm.Provider
	cache    cache.Cache
	log      *logrus.Logger
}

func NewChatAgent(
	sessions mongorepo.ChatSessionRepository,
	messages mongorepo.ChatMessageRepository,
	owners pgrepo.OwnerRepository,
	skills pgrepo.SkillRepository,
	projects pgrepo.ProjectRepository,
	model llm.Provider,
	c cache.Cache,
	log *logrus.Logger,
) *ChatAgent {
	return &ChatAgent{
		sessions: sessions,
		messages: messages,
		owners:   owners,
		skills:   skills,
		projects: projects,
		model:    model,
		cache:    c,
		log:      log,
	}
}

func (a *ChatAgent) StartSession(ctx context.Context, visitorName string) (*models.ChatSession, error) {
	const op = "ChatAgent.StartSession"

	now := time.Now().UTC()
	s := &models.ChatSession{
		SessionID:    uuid.NewString(),
		VisitorName:  strings.TrimSpace(visitorName),
		Status:       "active",
		StartedAt:    now,
		LastActiveAt: now,
	}
	if err := a.sessions.Create(ctx, s); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to create chat session", err)
	}
	return s, nil
}

func (a *ChatAgent) History(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error) {
	const op = "ChatAgent.History"

	if sessionID == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "session_id is required", nil)
	}
	if _, err := a.activeSession(ctx, op, sessionID, true); err != nil {
		return nil, err
	}

	rows, err := a.messages.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}

func (a *ChatAgent) EndSession(ctx context.Context, sessionID string) error {
	const op = "ChatAgent.EndSession"

	if sessionID == "" {
		return apperr.E(apperr.CodeInvalidArgument, op, "session_id is required", nil)
	}
	if _, err := a.activeSession(ctx, op, sessionID, true); err != nil {
		return err
	}
	if err := a.sessions.End(ctx, sessionID, time.Now().UTC()); err != nil {
		return apperr.E(apperr.CodePersistence, op, "failed to end session", err)
	}
	return nil
}

// Reply runs one chat turn: persist the visitor message, infer, persist the
// assistant reply. Chat replies are plain text, so there is no parse step.
func (a *ChatAgent) Reply(ctx context.Context, sessionID, content string) (*models.ChatMessage, error) {
	const op = "ChatAgent.Reply"

	reply, err := a.reply(ctx, op, sessionID, content)
	if err != nil {
		a.log.WithField("session_id", sessionID).WithError(err).Error("chat task failed")
		return nil, err
	}
	return reply, nil
}

func (a *ChatAgent) reply(ctx context.Context, op, sessionID, content string) (*models.ChatMessage, error) {
	filled, err := a.prepareTurn(ctx, op, sessionID, content)
	if err != nil {
		return nil, err
	}

	raw, err := a.model.Generate(ctx, filled, TempChat)
	if err != nil {
		return nil, apperr.E(apperr.CodeInference, op, "language model call failed", err)
	}

	return a.recordReply(ctx, op, sessionID, strings.TrimSpace(raw))
}

// StreamReply is the websocket variant: chunks are forwarded as they arrive
// and the accumulated reply is persisted when the stream completes cleanly.
func (a *ChatAgent) StreamReply(ctx context.Context, sessionID, content string) (<-chan string, <-chan error, error) {
	const op = "ChatAgent.StreamReply"

	filled, err := a.prepareTurn(ctx, op, sessionID, content)
	if err != nil {
		a.log.WithField("session_id", sessionID).WithError(err).Error("chat task failed")
		return nil, nil, err
	}

	chunks, errs := a.model.Stream(ctx, filled, TempChat)

	out := make(chan string, 32)
	outErrs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(outErrs)

		// keep draining chunks even after the consumer goes away, so the
		// provider goroutine can finish and the turn is still recorded
		var sb strings.Builder
		delivering := true
		for chunk := range chunks {
			sb.WriteString(chunk)
			if !delivering {
				continue
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				delivering = false
			}
		}

		streamErr := <-errs
		if !delivering {
			if streamErr != nil {
				a.log.WithField("session_id", sessionID).WithError(streamErr).Warn("model stream aborted after consumer left")
			}
			if reply := strings.TrimSpace(sb.String()); reply != "" {
				if _, err := a.recordReply(context.WithoutCancel(ctx), op, sessionID, reply); err != nil {
					a.log.WithField("session_id", sessionID).WithError(err).Error("failed to store reply after consumer left")
				}
			}
			return
		}
		if streamErr != nil {
			outErrs <- apperr.E(apperr.CodeInference, op, "language model stream failed", streamErr)
			return
		}
		if _, err := a.recordReply(ctx, op, sessionID, strings.TrimSpace(sb.String())); err != nil {
			outErrs <- err
		}
	}()
	return out, outErrs, nil
}

func (a *ChatAgent) prepareTurn(ctx context.Context, op, sessionID, content string) (string, error) {
	content = strings.TrimSpace(content)
	if sessionID == "" || content == "" {
		return "", apperr.E(apperr.CodeInvalidArgument, op, "session_id and content are required", nil)
	}
	if len(content) > maxVisitorMsgLength {
		return "", apperr.E(apperr.CodeInvalidArgument, op, "message too long", nil)
	}

	if _, err := a.activeSession(ctx, op, sessionID, false); err != nil {
		return "", err
	}

	system, err := a.systemPrompt(ctx, op)
	if err != nil {
		return "", err
	}

	history, err := a.messages.LatestN(ctx, sessionID, chatHistoryWindow)
	if err != nil {
		return "", apperr.E(apperr.CodeInternal, op, "failed to load chat history", err)
	}

	if err := a.messages.Insert(ctx, &models.ChatMessage{
		SessionID: sessionID,
		Sender:    models.SenderVisitor,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return "", apperr.E(apperr.CodePersistence, op, "failed to store visitor message", err)
	}

	return prompt.Fill(prompt.ChatTurn, map[string]string{
		"system":  system,
		"history": prompt.FormatHistory(history),
		"message": content,
	}), nil
}

func (a *ChatAgent) recordReply(ctx context.Context, op, sessionID, reply string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		SessionID: sessionID,
		Sender:    models.SenderAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.messages.Insert(ctx, msg); err != nil {
		return nil, apperr.E(apperr.CodePersistence, op, "failed to store assistant reply", err)
	}

	// one visitor message plus one reply per turn
	if err := a.sessions.Touch(ctx, sessionID, time.Now().UTC(), 2); err != nil {
		a.log.WithField("session_id", sessionID).WithError(err).Warn("failed to touch session")
	}
	return msg, nil
}

func (a *ChatAgent) activeSession(ctx context.Context, op, sessionID string, allowEnded bool) (*models.ChatSession, error) {
	s, err := a.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.E(apperr.CodeNotFound, op, "chat session not found", err)
		}
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load session", err)
	}
	if !allowEnded && s.Status == "ended" {
		return nil, apperr.E(apperr.CodeConflict, op, "chat session already ended", nil)
	}
	return s, nil
}

func (a *ChatAgent) systemPrompt(ctx context.Context, op string) (string, error) {
	owner, err := a.owners.First(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.E(apperr.CodeInsufficientData, op, "no owner profile configured", err)
		}
		return "", apperr.E(apperr.CodeInternal, op, "failed to load owner", err)
	}

	key := cache.SystemPromptKey(owner.ID)
	if a.cache != nil {
		if cached, hit, err := a.cache.GetString(ctx, key); err == nil && hit {
			return cached, nil
		} else if err != nil {
			a.log.WithError(err).Debug("system prompt cache read failed, recomputing")
		}
	}

	skills, err := a.skills.ListByOwner(ctx, owner.ID)
	if err != nil {
		return "", apperr.E(apperr.CodeInternal, op, "failed to load skills", err)
	}
	projects, err := a.projects.ListFeatured(ctx, owner.ID)
	if err != nil {
		return "", apperr.E(apperr.CodeInternal, op, "failed to load projects", err)
	}

	system := prompt.Fill(prompt.ChatSystem, map[string]string{
		"full_name": owner.FullName,
		"headline":  owner.Headline,
		"location":  owner.Location,
		"bio":       owner.Bio,
		"skills":    prompt.FormatSkills(skills),
		"projects":  prompt.FormatProjects(projects),
	})

	if a.cache != nil {
		if err := a.cache.SetString(ctx, key, system, systemPromptTTL); err != nil {
			a.log.WithError(err).Debug("system prompt cache write failed")
		}
	}
	return system, nil
}
