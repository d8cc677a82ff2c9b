package ieventrepo

import (
	"context"

	"github.com/corray333/backend-labs/store/internal/service/models/orderevent"
)

// IEventRepository publishes committed order mutations.
type IEventRepository interface {
	Publish(ctx context.Context, events []orderevent.Event) error
}
