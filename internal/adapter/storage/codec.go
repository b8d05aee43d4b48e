package storage

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

const (
	cartKey          = "bakeryCart"
	sessionKeyPrefix = "session:"
	currentPageField = ":currentPage"
	submissionsKey   = "contactSubmissions"
)

var ErrCorruptData = errors.New("corrupt stored data")

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + currentPageField
}

func encodeCart(items []domain.CartItem) (string, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", errors.Wrap(err, "encode cart")
	}
	return string(b), nil
}

func decodeCart(raw string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrap(ErrCorruptData, "decode cart: "+err.Error())
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func encodeSubmissions(subs []domain.Submission) (string, error) {
	if subs == nil {
		subs = []domain.Submission{}
	}
	b, err := json.Marshal(subs)
	if err != nil {
		return "", errors.Wrap(err, "encode submissions")
	}
	return string(b), nil
}

func decodeSubmissions(raw string) ([]domain.Submission, error) {
	var subs []domain.Submission
	if err := json.Unmarshal([]byte(raw), &subs); err != nil {
		return nil, errors.Wrap(ErrCorruptData, "decode submissions: "+err.Error())
	}
	return subs, nil
}

// appendSubmission performs the read-modify-write on a raw list value. An
// empty raw value is an empty list.
func appendSubmission(raw string, sub domain.Submission) (string, error) {
	var subs []domain.Submission
	if raw != "" {
		var err error
		if subs, err = decodeSubmissions(raw); err != nil {
			return "", err
		}
	}
	return encodeSubmissions(append(subs, sub))
}
