package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// ApiKeyPrefix marks keys issued by this service.
const ApiKeyPrefix = "rc_"

func GenerateRandomKey(length int) (string, error) {
	b := make([]byte, length)
	// err == nil only if len(b) bytes were read.
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func GenerateApiKey() (string, error) {
	key, err := GenerateRandomKey(32)
	if err != nil {
		return "", err
	}
	return ApiKeyPrefix + key, nil
}
