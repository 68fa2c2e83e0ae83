package service

import (
	"crypto/rand"
	"math/big"
)

// без похожих символов (I/l/1, O/0)
const passwordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%^&*"

// generatePassword — случайный пароль для reset-password; отдаётся клиенту
// один раз и нигде не сохраняется в открытом виде.
func generatePassword(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = passwordChars[n.Int64()]
	}
	return string(b), nil
}
