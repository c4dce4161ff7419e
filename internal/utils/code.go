package utils

import (
	"math/rand"
	"strings"
)

// Alphabet sans caractères ambigus (pas de 0/O ni 1/I/L)
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GroupCodeLength longueur des codes de groupe partageables
const GroupCodeLength = 6

// GenerateGroupCode génère un code court partageable pour rejoindre un groupe
func GenerateGroupCode() string {
	var sb strings.Builder
	sb.Grow(GroupCodeLength)
	for i := 0; i < GroupCodeLength; i++ {
		sb.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return sb.String()
}

// NormalizeGroupCode met un code saisi au format canonique (majuscules, sans espaces)
func NormalizeGroupCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
