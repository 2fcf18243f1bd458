package internal

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kwkoo/quizrunner/internal/common"
)

// Replies, sent as "<reply> <json>".
const (
	replyQuestion = "question"
	replyReveal   = "reveal"
	replyHide     = "hide"
	replyStats    = "stats"
	replyResult   = "result"
	replySets     = "sets"
	replyError    = "error"
)

// CommandProcessor turns a client command into the replies for that client.
// The hub may run several commands at once; Sessions and Session guard their
// own state.
type CommandProcessor struct {
	sessions *Sessions
}

func NewCommandProcessor(sessions *Sessions) *CommandProcessor {
	return &CommandProcessor{sessions: sessions}
}

type replies []string

func (r *replies) add(command string, payload interface{}) {
	reply, err := common.FormatReply(command, payload)
	if err != nil {
		log.Printf("error encoding %s reply: %v", command, err)
		return
	}
	*r = append(*r, reply)
}

func (r *replies) addError(err error) {
	r.add(replyError, errorPayload(err))
}

func (p *CommandProcessor) Process(ctx context.Context, sessionid string, c *ClientCommand) []string {
	var out replies

	switch c.cmd {
	case cmdThrottled:
		out.addError(errors.New("too many commands - slow down"))
		return out

	case cmdLoad:
		session, err := p.sessions.Start(ctx, sessionid, c.arg)
		if err != nil {
			log.Printf("could not start session %s with question set %q: %v", sessionid, c.arg, err)
			out.addError(err)
			return out
		}
		out.addQuestion(session)
		out.add(replyStats, session.Stats())
		return out

	case cmdSets:
		names, err := p.sessions.ListSets(ctx)
		if err != nil {
			out.addError(err)
			return out
		}
		out.add(replySets, names)
		return out
	}

	session, err := p.sessions.Get(sessionid)
	if err != nil {
		out.addError(err)
		return out
	}

	switch c.cmd {
	case cmdCurrent:
		out.addQuestion(session)

	case cmdSelect:
		index, err := c.intArg()
		if err != nil {
			out.addError(fmt.Errorf("invalid alternative %q", c.arg))
			return out
		}
		stats, err := session.Select(index)
		if err != nil {
			out.addError(err)
			return out
		}
		if stats != nil {
			out.add(replyStats, stats)
		}

	case cmdNext:
		outcome, err := session.Next()
		if err != nil {
			out.addError(err)
			return out
		}
		if outcome.Result != nil {
			out.add(replyStats, common.NewStatsView(outcome.Result.Stats))
			out.add(replyResult, outcome.Result)
			return out
		}
		out.add(replyQuestion, outcome.Question)

	case cmdPrev:
		view, err := session.Previous()
		if err != nil {
			out.addError(err)
			return out
		}
		out.add(replyQuestion, view)

	case cmdJump:
		index, err := c.intArg()
		if err != nil {
			out.addError(fmt.Errorf("invalid question index %q", c.arg))
			return out
		}
		view, err := session.JumpTo(index)
		if err != nil {
			out.addError(err)
			return out
		}
		out.add(replyQuestion, view)

	case cmdReveal:
		reveal, stats, err := session.Reveal()
		if err != nil {
			out.addError(err)
			return out
		}
		out.add(replyReveal, reveal)
		out.add(replyStats, stats)

	case cmdHide:
		session.Hide()
		out.add(replyHide, nil)

	case cmdReset:
		out.add(replyStats, session.ResetStats())
		out.addQuestion(session)

	case cmdStats:
		out.add(replyStats, session.Stats())

	case cmdResult:
		result, err := session.Result()
		if err != nil {
			out.addError(err)
			return out
		}
		out.add(replyResult, result)

	default:
		out.addError(fmt.Errorf("unrecognized command %q", c.cmd))
	}
	return out
}

func (r *replies) addQuestion(session *common.Session) {
	view, err := session.CurrentQuestion()
	if err != nil {
		r.addError(err)
		return
	}
	r.add(replyQuestion, view)
}

type errorReply struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// The kind lets the view decide between a retry affordance and a plain
// notice.
func errorPayload(err error) errorReply {
	var (
		unavailable *common.SourceUnavailableError
		format      *common.SourceFormatError
		integrity   *common.DataIntegrityError
		outOfRange  *common.OutOfRangeError
		empty       *common.EmptyQuestionSetError
		noSession   *common.NoSessionError
	)
	kind := "invalid"
	switch {
	case errors.As(err, &format):
		kind = "source-format"
	case errors.As(err, &unavailable):
		kind = "source-unavailable"
	case errors.As(err, &integrity):
		kind = "data-integrity"
	case errors.As(err, &outOfRange):
		kind = "out-of-range"
	case errors.As(err, &empty):
		kind = "empty-question-set"
	case errors.As(err, &noSession):
		kind = "no-session"
	}
	return errorReply{
		Kind:    kind,
		Message: err.Error(),
	}
}
