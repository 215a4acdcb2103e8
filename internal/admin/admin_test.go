package admin

import (
	"context"
	"testing"
)

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyToken(hash, "s3cret") {
		t.Error("correct token rejected")
	}
	if VerifyToken(hash, "wrong") {
		t.Error("wrong token accepted")
	}
	if VerifyToken("", "s3cret") || VerifyToken(hash, "") {
		t.Error("empty hash or token accepted")
	}
}

func TestAuditorWithoutDatabase(t *testing.T) {
	a := NewAuditor(nil)
	if err := a.LogAction(context.Background(), "127.0.0.1", "/x", "reset", nil, true); err != nil {
		t.Fatalf("log without db: %v", err)
	}
	logs, err := a.AuditLogs(context.Background(), 10, 0)
	if err != nil || len(logs) != 0 {
		t.Fatalf("expected no logs, got %v %v", logs, err)
	}
}
