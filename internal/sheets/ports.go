package sheets

import (
	"context"

	"fintrack/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionAppender interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	TransactionDeleter interface {
		Delete(ctx context.Context, id string) error
	}

	// TransactionMirror is what the sync worker needs: a destination that
	// can both receive rows and remove them by transaction id.
	TransactionMirror interface {
		TransactionAppender
		TransactionDeleter
	}
)
