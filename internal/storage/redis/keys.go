package redis

import (
	"fmt"
	"strings"

	"github.com/mindgrid/mindgrid-server/internal/model"
)

// Key prefix for all economy data
const keyPrefix = "mindgrid"

// accountKey returns the Redis key for an Account document
func accountKey(uid model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, uid)
}

// handleKey returns the Redis key for a HandleReservation, keyed by the
// normalized handle
func handleKey(handle string) string {
	return fmt.Sprintf("%s:handle:%s", keyPrefix, handle)
}

// accountKeyPattern matches every account key, for SCAN
func accountKeyPattern() string {
	return keyPrefix + ":account:*"
}

// accountIDFromKey recovers the account ID from its Redis key
func accountIDFromKey(key string) model.AccountID {
	return model.AccountID(strings.TrimPrefix(key, keyPrefix+":account:"))
}
