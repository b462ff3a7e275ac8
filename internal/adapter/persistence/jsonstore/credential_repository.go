package jsonstore

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"os"

	"taller_str/internal/usecase/interfaces"
)

const credentialsFile = "auth.json"

const defaultAdminPassword = "admin123"

type credentialRecord struct {
	PasswordHash string `json:"passwordHash"`
}

// CredentialJSONRepository stores the shared admin password as a SHA-256 hex
// digest in auth.json. The record is seeded from ADMIN_PASSWORD (or the
// default) on first use.

type CredentialJSONRepository struct {
	rec *singleton[credentialRecord]
}

var _ interfaces.ICredentialRepository = (*CredentialJSONRepository)(nil)

func NewCredentialJSONRepository(dataDir string) *CredentialJSONRepository {
	return &CredentialJSONRepository{rec: newSingleton[credentialRecord](dataDir, credentialsFile)}
}

func (r *CredentialJSONRepository) Verify(ctx context.Context, password string) (bool, error) {
	r.rec.mu.Lock()
	defer r.rec.mu.Unlock()

	rec, err := r.loadOrSeed()
	if err != nil {
		return false, err
	}
	candidate := hashPassword(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(rec.PasswordHash)) == 1, nil
}

func (r *CredentialJSONRepository) Update(ctx context.Context, newPassword string) error {
	r.rec.mu.Lock()
	defer r.rec.mu.Unlock()

	return r.rec.store(credentialRecord{PasswordHash: hashPassword(newPassword)})
}

func (r *CredentialJSONRepository) loadOrSeed() (credentialRecord, error) {
	rec, found, err := r.rec.load()
	if err != nil {
		return credentialRecord{}, err
	}
	if !found || rec.PasswordHash == "" {
		initial := os.Getenv("ADMIN_PASSWORD")
		if initial == "" {
			initial = defaultAdminPassword
		}
		rec = credentialRecord{PasswordHash: hashPassword(initial)}
		if err := r.rec.store(rec); err != nil {
			return credentialRecord{}, err
		}
	}
	return rec, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
