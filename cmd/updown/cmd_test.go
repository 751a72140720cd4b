package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "updown.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

func TestValidateCommand(t *testing.T) {
	writeConfig(t, `
checkHealthIntervalSeconds: 30
services: [https://example.com]
slackWebhook: https://hooks.example.com/x
`)
	if err := runValidate(validateCmd, nil); err != nil {
		t.Fatalf("validate: %v", err)
	}

	writeConfig(t, `
checkHealthIntervalSeconds: 30
services: [https://example.com]
`)
	if err := runValidate(validateCmd, nil); err == nil {
		t.Fatal("expected error for config without webhooks")
	}
}

func TestCheckCommand(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	writeConfig(t, "checkHealthIntervalSeconds: 30\nslackWebhook: https://hooks.example.com/x\nservices: ["+up.URL+"]\n")
	if err := runCheck(checkCmd, nil); err != nil {
		t.Fatalf("check all up: %v", err)
	}

	writeConfig(t, "checkHealthIntervalSeconds: 30\nslackWebhook: https://hooks.example.com/x\nservices: ["+up.URL+", "+down.URL+"]\n")
	err := runCheck(checkCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("err = %v, want 1 of 2 services down", err)
	}
}

func TestNotifyCommand(t *testing.T) {
	bodies := make(chan string, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	writeConfig(t, "checkHealthIntervalSeconds: 30\nservices: [https://example.com]\nslackWebhook: "+hook.URL+"\n")
	notifyMessage = "hello"
	if err := runNotify(notifyCmd, nil); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got := <-bodies; got != `{"text":"hello"}` {
		t.Errorf("body = %q", got)
	}
}
