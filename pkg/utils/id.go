package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idSeq uint64

// GenMessageID generates a message id from the current UTC nanosecond
// timestamp and an atomic sequence number. Ids sort in creation order,
// which keeps display ordering stable even when two messages land in the
// same nanosecond.
func GenMessageID() string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("msg-%d-%d", n, s)
}

// GenNotificationID generates an id for a notification record using the
// same timestamp-and-sequence scheme as message ids.
func GenNotificationID() string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("ntf-%d-%d", n, s)
}
