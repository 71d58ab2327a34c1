package remote

import (
	"testing"
	"time"
)

func TestNodeToken_RoundTrip(t *testing.T) {
	tok, err := IssueNodeToken("s3cret", "node-7", time.Minute)
	if err != nil {
		t.Fatalf("IssueNodeToken: %v", err)
	}
	got, err := VerifyNodeToken("s3cret", tok)
	if err != nil {
		t.Fatalf("VerifyNodeToken: %v", err)
	}
	if got != "node-7" {
		t.Fatalf("VerifyNodeToken = %q, want %q", got, "node-7")
	}
}

func TestNodeToken_WrongSecretRejected(t *testing.T) {
	tok, err := IssueNodeToken("s3cret", "node-7", time.Minute)
	if err != nil {
		t.Fatalf("IssueNodeToken: %v", err)
	}
	if _, err := VerifyNodeToken("other-secret", tok); err == nil {
		t.Fatal("VerifyNodeToken accepted a token signed with a different secret")
	}
}

func TestNodeToken_Expired(t *testing.T) {
	tok, err := IssueNodeToken("s3cret", "node-7", -time.Minute)
	if err != nil {
		t.Fatalf("IssueNodeToken: %v", err)
	}
	if _, err := VerifyNodeToken("s3cret", tok); err == nil {
		t.Fatal("VerifyNodeToken accepted an expired token")
	}
}
