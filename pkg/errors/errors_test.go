package errors

import (
	stderrors "errors"
	"testing"
)

func TestIs_MatchesCode(t *testing.T) {
	err := New(ErrCodeChartNotFound, "chart %q", "eng")
	if !Is(err, ErrCodeChartNotFound) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeStore) {
		t.Error("Is() = true for a different code")
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save chart")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost from chain")
	}
	if GetCode(err) != ErrCodeStore {
		t.Errorf("GetCode() = %s, want %s", GetCode(err), ErrCodeStore)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidChart, "bad node")); got != "bad node" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	plain := stderrors.New("plain")
	if got := UserMessage(plain); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestGetCode_NonStructured(t *testing.T) {
	if got := GetCode(stderrors.New("x")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}
