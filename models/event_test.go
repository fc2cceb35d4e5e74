package models

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestLogEvent_InvalidTypeIsDropped(t *testing.T) {
	// Must not panic and must not attempt a write.
	LogEvent(context.Background(), EventType("not_a_real_event"), nil, nil)
}

func TestLogEvent_NoDatabaseIsNoop(t *testing.T) {
	id := "11111111-1111-1111-1111-111111111111"
	LogEvent(context.Background(), EventTypeReceiptViewed, &id, JSONMap{"k": "v"})
}

func TestEventTypeIsValid(t *testing.T) {
	valid := []EventType{
		EventTypeReceiptCreated, EventTypeReceiptViewed, EventTypeDisputeCreated,
		EventTypeReceiptViewBlocked, EventTypePolicyUpdated, EventTypeReceiptShareCreated,
		EventTypeReceiptShareViewed, EventTypeReceiptVerified, EventTypeReceiptVerificationFailed,
	}
	for _, et := range valid {
		if !et.IsValid() {
			t.Errorf("%q should be valid", et)
		}
	}
	for _, et := range []EventType{"", "RECEIPT_CREATED", "receipt_deleted"} {
		if et.IsValid() {
			t.Errorf("%q should be invalid", et)
		}
	}
}

func TestIsMissingTableError(t *testing.T) {
	if !IsMissingTableError(&mysql.MySQLError{Number: 1146, Message: "Table 'proofpay.receipt_events' doesn't exist"}) {
		t.Error("mysql 1146 should be a missing-table error")
	}
	if !IsMissingTableError(errors.New("Error 1146: Table 'x' doesn't exist")) {
		t.Error("stringly missing-table error should match")
	}
	if IsMissingTableError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Error("duplicate key is not a missing-table error")
	}
	if IsMissingTableError(nil) {
		t.Error("nil is not a missing-table error")
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !IsDuplicateKeyError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'sim_pay_1' for key 'payment_id'"}) {
		t.Error("mysql 1062 should be a duplicate-key error")
	}
	if IsDuplicateKeyError(&mysql.MySQLError{Number: 1146, Message: "missing"}) {
		t.Error("missing table is not a duplicate-key error")
	}
	if IsDuplicateKeyError(nil) {
		t.Error("nil is not a duplicate-key error")
	}
}
