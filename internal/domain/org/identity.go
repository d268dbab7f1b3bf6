package org

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const (
	credentialLength   = 10
	credentialAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// DeriveDisplayName builds the account display name: given name followed
// immediately by the initials of surname and patronymic, when present.
func DeriveDisplayName(e Employee) string {
	var initials strings.Builder
	if e.LastName != "" {
		initials.WriteString(firstRune(e.LastName))
	}
	if e.Patronymic != "" {
		initials.WriteString(firstRune(e.Patronymic))
	}
	return strings.TrimSpace(e.FirstName + initials.String())
}

// DeriveLogin lowercases the display name, strips spaces and transliterates
// it to ASCII, so Cyrillic names yield plain Latin logins.
func DeriveLogin(displayName string) string {
	compact := strings.ReplaceAll(strings.ToLower(displayName), " ", "")
	return unidecode.Unidecode(compact)
}

// GenerateCredential draws a fixed-length credential uniformly from letters
// and digits using the platform's CSPRNG.
func GenerateCredential() (string, error) {
	var out strings.Builder
	out.Grow(credentialLength)
	max := big.NewInt(int64(len(credentialAlphabet)))
	for i := 0; i < credentialLength; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("credential generation failed: %w", err)
		}
		out.WriteByte(credentialAlphabet[idx.Int64()])
	}
	return out.String(), nil
}

// FillAccountDefaults populates any blank account field from the employee's
// profile. Pre-seeded values are left untouched; the derivation runs once.
func FillAccountDefaults(acc *Account, e Employee) error {
	if acc.Name == "" {
		acc.Name = DeriveDisplayName(e)
	}
	if acc.Login == "" {
		acc.Login = DeriveLogin(acc.Name)
	}
	if acc.Credential == "" {
		credential, err := GenerateCredential()
		if err != nil {
			return err
		}
		acc.Credential = credential
	}
	return nil
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
