package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/luminar/internal/intelligence"
)

// MsgUnknownDate is shown when a test date cannot be parsed.
const MsgUnknownDate = "Data desconhecida"

var monthsPTBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatTestDate renders an ISO-8601 timestamp as a long pt-BR date in the
// local time zone, e.g. "10 de setembro de 2025".
func FormatTestDate(s string) string {
	return FormatTestDateIn(s, time.Local)
}

// FormatTestDateIn is FormatTestDate for an explicit location.
func FormatTestDateIn(s string, loc *time.Location) string {
	// RFC3339Nano parsing accepts timestamps with and without fractional
	// seconds.
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return MsgUnknownDate
	}
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsPTBR[t.Month()-1], t.Year())
}

// FirstName returns the first whitespace-separated word of fullName.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Greeting is the dashboard welcome line.
func Greeting(fullName string) string {
	return fmt.Sprintf("Olá, %s! Aqui está um resumo do seu perfil.", FirstName(fullName))
}

// RankDimensions returns the dimension with the highest score. Ties go to
// the dimension that comes first in the fixed order.
func RankDimensions(scores intelligence.Scores) intelligence.Dimension {
	return intelligence.Top(scores)
}
