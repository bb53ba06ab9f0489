package gql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Services son los servicios que expone /graphql.
type Services struct {
	Auth        *service.AuthService
	Exams       *service.ExamService
	History     *service.HistoryService
	Bookings    *service.BookingService
	Matches     *service.MatchService
	Leaderboard *service.LeaderboardService
}

// Caller es el usuario autenticado (sale siempre del token, nunca de los args).
type Caller struct {
	UserID primitive.ObjectID
	Role   string
}

func (c Caller) IsAdmin() bool { return c.Role == models.UserTypeAdmin }

type callerKey struct{}

func withCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

var errUnauthenticated = errors.New("unauthenticated")

func callerFrom(p graphql.ResolveParams) (Caller, error) {
	c, ok := p.Context.Value(callerKey{}).(Caller)
	if !ok {
		return Caller{}, errUnauthenticated
	}
	return c, nil
}

// ================== TIPOS ==================

var progressType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SkillProgress",
	Fields: graphql.Fields{
		"skill": &graphql.Field{Type: graphql.String},
		"score": &graphql.Field{Type: graphql.Float},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: merge(
		fields(graphql.ID, "id"),
		fields(graphql.String, "username", "email", "profileImage", "userType", "languageLevel"),
		fields(graphql.DateTime, "createdAt"),
		graphql.Fields{"progress": field("progress", graphql.NewList(progressType))},
	),
})

var questionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Question",
	Fields: merge(
		fields(graphql.String, "prompt", "imageUrl", "audioUrl"),
		fields(graphql.Int, "minWords", "maxWords"),
		fields(graphql.Float, "points"),
		graphql.Fields{"options": field("options", graphql.NewList(graphql.String))},
	),
})

var examType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Exam",
	Fields: merge(
		fields(graphql.ID, "id"),
		fields(graphql.String, "kind", "title", "level", "passage", "audioUrl"),
		fields(graphql.Int, "timeLimitSeconds"),
		graphql.Fields{"questions": field("questions", graphql.NewList(questionType))},
	),
})

var historyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HistoryEntry",
	Fields: merge(
		fields(graphql.ID, "id", "userId", "testId"),
		fields(graphql.String, "testModelName", "skill", "outcome"),
		fields(graphql.Float, "score", "maxScore", "percent"),
		fields(graphql.DateTime, "createdAt"),
	),
})

var bookingType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Booking",
	Fields: merge(
		fields(graphql.ID, "id", "traineeId", "trainerId"),
		fields(graphql.String, "topic", "status"),
		fields(graphql.Int, "durationMinutes", "version"),
		fields(graphql.Boolean, "traineeRsvp", "trainerRsvp"),
		fields(graphql.DateTime, "scheduledAt", "endsAt", "confirmedAt", "completedAt", "createdAt"),
	),
})

var matchAnswerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MatchAnswer",
	Fields: merge(
		fields(graphql.ID, "playerId"),
		fields(graphql.Int, "questionIndex"),
		fields(graphql.String, "answer"),
		fields(graphql.Float, "points"),
		fields(graphql.DateTime, "submittedAt"),
	),
})

var matchType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Match",
	Fields: merge(
		fields(graphql.ID, "id", "initiatorId", "opponentId", "examId", "winnerId"),
		fields(graphql.String, "kind", "status", "completionReason"),
		fields(graphql.Int, "questionCount", "initiatorCurrentQuestion", "opponentCurrentQuestion", "durationSeconds", "version"),
		fields(graphql.Float, "initiatorScore", "opponentScore"),
		fields(graphql.DateTime, "expiresAt", "startedAt", "completedAt", "createdAt"),
		graphql.Fields{"answers": field("answers", graphql.NewList(matchAnswerType))},
	),
})

var leaderboardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LeaderboardEntry",
	Fields: merge(
		fields(graphql.Int, "rank"),
		fields(graphql.ID, "userId"),
		fields(graphql.String, "username"),
		fields(graphql.Float, "points"),
	),
})

// ================== ARGS ==================

func nonNull(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
}

func optional(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: t}
}

func argString(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func argInt(p graphql.ResolveParams, name string) int {
	n, _ := p.Args[name].(int)
	return n
}

func argID(p graphql.ResolveParams, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(argString(p, name))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s is not a valid id", service.ErrInvalidInput, name)
	}
	return id, nil
}

var pageArgs = graphql.FieldConfigArgument{
	"limit":  optional(graphql.Int),
	"offset": optional(graphql.Int),
}

func withPage(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	out := graphql.FieldConfigArgument{}
	for k, v := range pageArgs {
		out[k] = v
	}
	for k, v := range args {
		out[k] = v
	}
	return out
}

// ================== SCHEMA ==================

// NewSchema arma queries y mutations sobre los servicios.
func NewSchema(s Services) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: guard(graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					return s.Auth.GetUserByID(p.Context, c.UserID)
				},
			},
			"exams": &graphql.Field{
				Type: graphql.NewList(examType),
				Args: withPage(graphql.FieldConfigArgument{
					"kind":  nonNull(graphql.String),
					"level": optional(graphql.String),
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return s.Exams.List(p.Context, models.ExamKind(argString(p, "kind")), argString(p, "level"),
						argInt(p, "limit"), argInt(p, "offset"))
				},
			},
			"exam": &graphql.Field{
				Type: examType,
				Args: graphql.FieldConfigArgument{
					"kind": nonNull(graphql.String),
					"id":   nonNull(graphql.ID),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return s.Exams.Get(p.Context, models.ExamKind(argString(p, "kind")), id)
				},
			},
			"history": &graphql.Field{
				Type: graphql.NewList(historyType),
				Args: withPage(graphql.FieldConfigArgument{
					"testModelName": optional(graphql.String),
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					return s.History.List(p.Context, c.UserID, argString(p, "testModelName"),
						argInt(p, "limit"), argInt(p, "offset"))
				},
			},
			"bookings": &graphql.Field{
				Type: graphql.NewList(bookingType),
				Args: withPage(graphql.FieldConfigArgument{
					"status": optional(graphql.String),
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					return s.Bookings.List(p.Context, c.UserID, argString(p, "status"),
						argInt(p, "limit"), argInt(p, "offset"))
				},
			},
			"match": &graphql.Field{
				Type: matchType,
				Args: graphql.FieldConfigArgument{
					"kind": nonNull(graphql.String),
					"id":   nonNull(graphql.ID),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return s.Matches.Get(p.Context, models.MatchKind(argString(p, "kind")), c.UserID, c.IsAdmin(), id)
				},
			},
			"matches": &graphql.Field{
				Type: graphql.NewList(matchType),
				Args: withPage(graphql.FieldConfigArgument{
					"kind":   nonNull(graphql.String),
					"status": optional(graphql.String),
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					return s.Matches.List(p.Context, models.MatchKind(argString(p, "kind")), c.UserID,
						argString(p, "status"), argInt(p, "limit"), argInt(p, "offset"))
				},
			},
			"leaderboard": &graphql.Field{
				Type: graphql.NewList(leaderboardType),
				Args: graphql.FieldConfigArgument{
					"limit": optional(graphql.Int),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return s.Leaderboard.Top(p.Context, argInt(p, "limit"))
				},
			},
		}),
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: guard(graphql.Fields{
			"createBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"trainerId":       nonNull(graphql.ID),
					"scheduledAt":     nonNull(graphql.DateTime),
					"durationMinutes": optional(graphql.Int),
					"topic":           optional(graphql.String),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					trainerID, err := argID(p, "trainerId")
					if err != nil {
						return nil, err
					}
					at, ok := p.Args["scheduledAt"].(time.Time)
					if !ok {
						return nil, fmt.Errorf("%w: scheduledAt must be an RFC 3339 date", service.ErrInvalidInput)
					}
					return s.Bookings.Create(p.Context, c.UserID, service.CreateBookingData{
						TrainerID:       trainerID,
						ScheduledAt:     at,
						DurationMinutes: argInt(p, "durationMinutes"),
						Topic:           argString(p, "topic"),
					})
				},
			},
			"rsvpBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"id":        nonNull(graphql.ID),
					"attending": nonNull(graphql.Boolean),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					attending, _ := p.Args["attending"].(bool)
					return s.Bookings.RSVP(p.Context, c.UserID, id, attending)
				},
			},
			"completeBooking": &graphql.Field{
				Type: bookingType,
				Args: graphql.FieldConfigArgument{
					"id": nonNull(graphql.ID),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					id, err := argID(p, "id")
					if err != nil {
						return nil, err
					}
					return s.Bookings.Complete(p.Context, c.UserID, c.IsAdmin(), id)
				},
			},
			"createMatch": &graphql.Field{
				Type: matchType,
				Args: graphql.FieldConfigArgument{
					"kind":       nonNull(graphql.String),
					"opponentId": nonNull(graphql.ID),
					"examId":     nonNull(graphql.ID),
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := callerFrom(p)
					if err != nil {
						return nil, err
					}
					opponentID, err := argID(p, "opponentId")
					if err != nil {
						return nil, err
					}
					examID, err := argID(p, "examId")
					if err != nil {
						return nil, err
					}
					return s.Matches.Create(p.Context, models.MatchKind(argString(p, "kind")), c.UserID, opponentID, examID)
				},
			},
			"acceptMatch": matchAction(func(p graphql.ResolveParams, c Caller, kind models.MatchKind, id primitive.ObjectID) (any, error) {
				return s.Matches.Accept(p.Context, kind, c.UserID, id)
			}, nil),
			"finishMatch": matchAction(func(p graphql.ResolveParams, c Caller, kind models.MatchKind, id primitive.ObjectID) (any, error) {
				return s.Matches.Finish(p.Context, kind, c.UserID, id)
			}, nil),
			"submitMatchAnswer": matchAction(func(p graphql.ResolveParams, c Caller, kind models.MatchKind, id primitive.ObjectID) (any, error) {
				return s.Matches.SubmitAnswer(p.Context, kind, c.UserID, id, argInt(p, "questionIndex"), argString(p, "answer"))
			}, graphql.FieldConfigArgument{
				"questionIndex": nonNull(graphql.Int),
				"answer":        nonNull(graphql.String),
			}),
		}),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// matchAction arma una mutation (kind, id, extra...) -> Match.
func matchAction(
	run func(p graphql.ResolveParams, c Caller, kind models.MatchKind, id primitive.ObjectID) (any, error),
	extra graphql.FieldConfigArgument,
) *graphql.Field {

	args := graphql.FieldConfigArgument{
		"kind": nonNull(graphql.String),
		"id":   nonNull(graphql.ID),
	}
	for k, v := range extra {
		args[k] = v
	}

	return &graphql.Field{
		Type: matchType,
		Args: args,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			c, err := callerFrom(p)
			if err != nil {
				return nil, err
			}
			id, err := argID(p, "id")
			if err != nil {
				return nil, err
			}
			return run(p, c, models.MatchKind(argString(p, "kind")), id)
		},
	}
}
