package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/kbukum/securekit/errors"
)

const testKey = "0123456789abcdef0123456789abcdef"

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/harmonic")
	t.Setenv("JWT_SECRET", "cli-test-signing-secret")
	t.Setenv("ENCRYPTION_KEY", testKey)
	t.Setenv("PASSWORD_TIME", "1")
	t.Setenv("PASSWORD_MEMORY", "8192")
	t.Setenv("PASSWORD_THREADS", "1")
	t.Setenv("LOGGING_LEVEL", "error")
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, a *app, stdin string, args ...string) result {
	t.Helper()
	if a == nil {
		a = newApp()
		a.isTerminal = func(int) bool { return false }
	}
	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()
	if stopErr := a.shutdown(); stopErr != nil {
		t.Errorf("shutdown failed: %v", stopErr)
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestVersion_NeedsNoConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	r := runCLI(t, nil, "", "version")
	if r.err != nil {
		t.Fatalf("version failed: %v", r.err)
	}
	if !strings.HasPrefix(r.stdout, "securekit ") || !strings.Contains(r.stdout, "token protocol 1.1.0") {
		t.Errorf("unexpected version output %q", r.stdout)
	}
}

func TestHashAndVerify_PasswordStdin(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "hunter2\n", "hash", "--password-stdin")
	if r.err != nil {
		t.Fatalf("hash failed: %v", r.err)
	}
	stored := strings.TrimSpace(r.stdout)
	if strings.Count(stored, ":") != 1 {
		t.Fatalf("expected hash:salt, got %q", stored)
	}

	r = runCLI(t, nil, "hunter2", "verify", "--password-stdin", stored)
	if r.err != nil {
		t.Fatalf("verify failed: %v", r.err)
	}
	if !strings.Contains(r.stderr, "password matches") {
		t.Errorf("expected match message, got %q", r.stderr)
	}

	r = runCLI(t, nil, "hunter3\n", "verify", "--password-stdin", stored)
	if r.err == nil || !strings.Contains(r.stderr, "does not match") {
		t.Errorf("expected mismatch, got err=%v stderr=%q", r.err, r.stderr)
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "\n", "hash", "--password-stdin")
	if !apperrors.HasCode(r.err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", r.err)
	}
}

func TestHash_Terminal(t *testing.T) {
	setTestEnv(t)

	tests := []struct {
		name    string
		inputs  []string
		wantErr string
	}{
		{"confirmed", []string{"s3cret", "s3cret"}, ""},
		{"mismatch", []string{"s3cret", "other"}, "passwords do not match"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inputs := tc.inputs
			a := newApp()
			a.stdinFd = func() int { return 0 }
			a.isTerminal = func(int) bool { return true }
			a.readPassword = func(int) ([]byte, error) {
				next := inputs[0]
				inputs = inputs[1:]
				return []byte(next), nil
			}

			r := runCLI(t, a, "", "hash")
			if tc.wantErr == "" {
				if r.err != nil {
					t.Fatalf("hash failed: %v", r.err)
				}
				if !strings.Contains(r.stderr, "Confirm password: ") {
					t.Errorf("expected confirmation prompt, got %q", r.stderr)
				}
				return
			}
			if r.err == nil || !strings.Contains(r.err.Error(), tc.wantErr) {
				t.Errorf("expected %q, got %v", tc.wantErr, r.err)
			}
		})
	}
}

func TestHash_NotATerminal(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "", "hash")
	if r.err == nil || !strings.Contains(r.err.Error(), "--password-stdin") {
		t.Errorf("expected hint to use --password-stdin, got %v", r.err)
	}
}

func TestEncryptDecrypt(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "", "encrypt", "meter 7 reading")
	if r.err != nil {
		t.Fatalf("encrypt failed: %v", r.err)
	}
	envelope := strings.TrimSpace(r.stdout)

	r = runCLI(t, nil, "", "decrypt", envelope)
	if r.err != nil || strings.TrimSpace(r.stdout) != "meter 7 reading" {
		t.Fatalf("decrypt mismatch: %q (%v)", r.stdout, r.err)
	}

	r = runCLI(t, nil, "from stdin\n", "encrypt")
	if r.err != nil {
		t.Fatalf("encrypt from stdin failed: %v", r.err)
	}
	r = runCLI(t, nil, r.stdout, "decrypt")
	if strings.TrimSpace(r.stdout) != "from stdin" {
		t.Errorf("expected stdin round trip, got %q (%v)", r.stdout, r.err)
	}

	r = runCLI(t, nil, "", "decrypt", "AAAA")
	if !apperrors.HasCode(r.err, apperrors.ErrCodeMalformedCiphertext) {
		t.Errorf("expected MALFORMED_CIPHERTEXT, got %v", r.err)
	}
}

func TestEncrypt_PersistsAcrossRunsWithConfiguredKey(t *testing.T) {
	setTestEnv(t)
	r := runCLI(t, nil, "", "encrypt", "stable")
	envelope := strings.TrimSpace(r.stdout)

	t.Setenv("ENCRYPTION_KEY", "")
	r = runCLI(t, nil, "", "decrypt", envelope)
	if !apperrors.HasCode(r.err, apperrors.ErrCodeAuthenticationFailed) {
		t.Errorf("a generated key must not open envelopes from another key, got %v", r.err)
	}
}

func TestTokenCommands(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "", "token", "issue", "--user", "u1", "--role", "admin")
	if r.err != nil {
		t.Fatalf("token issue failed: %v", r.err)
	}
	access := strings.TrimSpace(r.stdout)

	r = runCLI(t, nil, "", "token", "verify", access)
	if r.err != nil {
		t.Fatalf("token verify failed: %v", r.err)
	}
	for _, want := range []string{"User:    u1", "Role:    admin", "Issuer:  harmonic-iot-protocol"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("expected %q in %q", want, r.stdout)
		}
	}

	r = runCLI(t, nil, "", "token", "refresh", "--user", "u1")
	if r.err != nil {
		t.Fatalf("token refresh failed: %v", r.err)
	}
	refresh := strings.TrimSpace(r.stdout)

	r = runCLI(t, nil, "", "token", "verify", "--refresh", refresh)
	if r.err != nil || !strings.Contains(r.stdout, "User:    u1") {
		t.Errorf("expected refresh token to verify, got %q (%v)", r.stdout, r.err)
	}

	r = runCLI(t, nil, "", "token", "verify", "--refresh", access)
	if !apperrors.HasCode(r.err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN, got %v", r.err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	r = runCLI(t, nil, "", "token", "verify", access)
	if !apperrors.HasCode(r.err, apperrors.ErrCodeSignatureInvalid) {
		t.Errorf("expected SIGNATURE_INVALID, got %v", r.err)
	}
}

func TestTokenIssue_RequiresUser(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "", "token", "issue", "--role", "admin")
	if r.err == nil || !strings.Contains(r.err.Error(), "user") {
		t.Errorf("expected required flag error, got %v", r.err)
	}
}

func TestRandom(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "", "random", "-n", "16")
	if r.err != nil || len(strings.TrimSpace(r.stdout)) != 16 {
		t.Errorf("expected 16 characters, got %q (%v)", r.stdout, r.err)
	}

	r = runCLI(t, nil, "", "random", "-n", "0")
	if !apperrors.HasCode(r.err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", r.err)
	}
}

func TestDescribe(t *testing.T) {
	setTestEnv(t)

	r := runCLI(t, nil, "", "describe")
	if r.err != nil {
		t.Fatalf("describe failed: %v", r.err)
	}
	for _, want := range []string{"Telemetry [healthy: export disabled]", "Secure Context [healthy]", "argon2id t=1 m=8192KiB p=1", "AES-256-GCM iv=16 tag=16"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("expected %q in %q", want, r.stdout)
		}
	}
	if strings.Contains(r.stdout, testKey) || strings.Contains(r.stdout, "cli-test-signing-secret") {
		t.Error("describe must not print secrets")
	}
}

func TestDescribe_JSONWithGeneratedSecrets(t *testing.T) {
	setTestEnv(t)
	t.Setenv("JWT_SECRET", "")

	r := runCLI(t, nil, "", "describe", "--json")
	if r.err != nil {
		t.Fatalf("describe failed: %v", r.err)
	}
	var out struct {
		Health []struct {
			Name    string `json:"name"`
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"health"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Health) != 2 || out.Health[1].Status != "degraded" || !strings.Contains(out.Health[1].Message, "jwt.secret") {
		t.Errorf("expected degraded secure context, got %+v", out.Health)
	}
}

func TestMissingDatabaseURL(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DATABASE_URL", "")

	r := runCLI(t, nil, "", "random")
	if !apperrors.HasCode(r.err, apperrors.ErrCodeMissingConfig) {
		t.Fatalf("expected MISSING_CONFIG, got %v", r.err)
	}
	appErr, _ := apperrors.AsAppError(r.err)
	if !appErr.Fatal {
		t.Error("expected fatal error")
	}
}

func TestConfigFile(t *testing.T) {
	setTestEnv(t)
	// The environment wins over the file, so the variable must be absent.
	os.Unsetenv("DATABASE_URL")

	path := filepath.Join(t.TempDir(), "config.yml")
	content := "name: securekit-test\ndatabase:\n  url: postgres://db/from-file\npassword:\n  time: 1\n  memory: 8192\n  threads: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	a := newApp()
	r := runCLI(t, a, "", "--config", path, "random")
	if r.err != nil {
		t.Fatalf("random with config file failed: %v", r.err)
	}
	if a.secure.DatabaseURL() != "postgres://db/from-file" || a.cfg.Name != "securekit-test" {
		t.Errorf("expected values from config file, got %q / %q", a.secure.DatabaseURL(), a.cfg.Name)
	}
}

func TestPrintError_DoesNotPanic(t *testing.T) {
	printError(apperrors.MissingConfig("database.url"))
	printError(errors.New("plain"))
}
