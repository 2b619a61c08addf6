package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrGetHistoryQueryIsNotConstructed = errors.New(
	"GetHistoryQuery must be created via NewGetHistoryQuery constructor",
)

// GetHistoryQuery builds the activity feed of one user.
//
// Example:
//
//	query, _ := NewGetHistoryQuery(actor.ID())
//	feed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for item := range feed {
//	    fmt.Println(item.Date, item.Time, item.Title)
//	}
type GetHistoryQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetHistoryQuery(userID kernel.UUID) (GetHistoryQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetHistoryQuery{}, err
	}
	return GetHistoryQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHistoryQueryIsNotConstructed)
}

func (q GetHistoryQuery) UserID() kernel.UUID { return q.userID }
