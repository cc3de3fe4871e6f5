package schedule

import (
	"context"
	"fmt"
)

// Directory resolves conversation membership and contact addresses. It is
// backed by the chat platform's user service and must be safe for use from
// concurrent pipelines.
type Directory interface {
	ListMembers(ctx context.Context, conversationID string) ([]string, error)
	ResolveAddresses(ctx context.Context, memberIDs []string) (map[string]string, error)
}

// DirectoryError reports a failed membership or address lookup.
type DirectoryError struct {
	Op  string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// ResolveParticipants fetches the membership of a conversation and maps each
// member identity to its contact address. The organizer is removed before
// resolution so it never shows up as its own invitee, and members without a
// resolvable address are dropped: an invite is only useful with a
// deliverable address.
func ResolveParticipants(ctx context.Context, dir Directory, conversationID, organizerID string) (map[string]string, error) {
	members, err := dir.ListMembers(ctx, conversationID)
	if err != nil {
		return nil, &DirectoryError{Op: "list members", Err: err}
	}

	ids := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, id := range members {
		if id == organizerID || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	addresses, err := dir.ResolveAddresses(ctx, ids)
	if err != nil {
		return nil, &DirectoryError{Op: "resolve addresses", Err: err}
	}

	participants := make(map[string]string, len(addresses))
	for _, id := range ids {
		if addr, ok := addresses[id]; ok && addr != "" {
			participants[id] = addr
		}
	}
	return participants, nil
}
