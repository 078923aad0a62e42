package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
)

var (
	ErrEmptyUser      = errors.New("user is required")
	ErrInvalidPayload = errors.New("invalid upload payload")
)

type DeleteURLsResult struct {
	Requested int   `json:"requested"`
	Deleted   int64 `json:"deleted"`
	Applied   bool  `json:"applied"`
}

type DeleteUserResult struct {
	User      string  `json:"user"`
	URLIDs    []int64 `json:"url_ids"`
	Scheduled bool    `json:"scheduled"`
	Existed   bool    `json:"existed"`
	Applied   bool    `json:"applied"`
}

type UploadResult struct {
	User    string  `json:"user"`
	Bytes   int     `json:"bytes"`
	URLs    int     `json:"urls"`
	URLIDs  []int64 `json:"url_ids,omitempty"`
	Applied bool    `json:"applied"`
}

type uploadBatch struct {
	URLs []string `json:"urls"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// DeleteURLs removes the given URL records. With apply=false nothing is
// written and the call can be repeated without changing state.
func (s *Service) DeleteURLs(ctx context.Context, urlIDs []int64, apply bool) (DeleteURLsResult, error) {
	l := ctxlogger.GetLogger(ctx)

	ids := uniqueIDs(urlIDs)
	result := DeleteURLsResult{Requested: len(ids), Applied: apply}
	if len(ids) == 0 {
		return result, nil
	}

	if !apply {
		l.Info("skipping url deletion", "requested", len(ids))
		return result, nil
	}

	deleted, err := s.store.DeleteURLs(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("delete urls: %w", err)
	}

	result.Deleted = deleted
	l.Info("deleted urls", "requested", len(ids), "deleted", deleted)

	return result, nil
}

// DeleteUser schedules a delete_urls task for the user's URLs and then removes
// the user's own records. URL deletion runs as its own task so each side is
// retried independently.
func (s *Service) DeleteUser(ctx context.Context, user string, scheduler URLDeletionScheduler, apply bool) (DeleteUserResult, error) {
	l := ctxlogger.GetLogger(ctx)

	user = strings.TrimSpace(user)
	if user == "" {
		return DeleteUserResult{}, ErrEmptyUser
	}

	result := DeleteUserResult{User: user, Applied: apply}

	ids, err := s.store.UserURLIDs(ctx, user)
	if err != nil {
		return result, fmt.Errorf("get urls of user %s: %w", user, err)
	}
	result.URLIDs = uniqueIDs(ids)

	if len(result.URLIDs) > 0 {
		if err := scheduler.ScheduleURLDeletion(ctx, result.URLIDs, apply); err != nil {
			return result, fmt.Errorf("schedule url deletion for user %s: %w", user, err)
		}
		result.Scheduled = true
	}

	if !apply {
		l.Info("skipping user deletion", "user", user, "urls", len(result.URLIDs))
		return result, nil
	}

	existed, err := s.store.DeleteUser(ctx, user)
	if err != nil {
		return result, fmt.Errorf("delete user %s: %w", user, err)
	}
	result.Existed = existed

	l.Info("deleted user", "user", user, "existed", existed, "urls", len(result.URLIDs))

	return result, nil
}

// Upload ingests a JSON payload of the form {"urls": [...]} for user.
func (s *Service) Upload(ctx context.Context, user string, payload []byte, apply bool) (UploadResult, error) {
	l := ctxlogger.GetLogger(ctx)

	user = strings.TrimSpace(user)
	if user == "" {
		return UploadResult{}, ErrEmptyUser
	}

	var batch uploadBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	urls := uniqueURLs(batch.URLs)
	result := UploadResult{User: user, Bytes: len(payload), URLs: len(urls), Applied: apply}

	if !apply {
		l.Info("skipping upload", "user", user, "bytes", len(payload), "urls", len(urls))
		return result, nil
	}

	if err := s.store.SaveUpload(ctx, user, payload); err != nil {
		return result, fmt.Errorf("save upload of user %s: %w", user, err)
	}

	if len(urls) > 0 {
		ids, err := s.store.AddURLs(ctx, user, urls)
		if err != nil {
			return result, fmt.Errorf("add urls of user %s: %w", user, err)
		}
		result.URLIDs = ids
	}

	l.Info("stored upload", "user", user, "bytes", len(payload), "urls", len(urls))

	return result, nil
}

func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func uniqueURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
