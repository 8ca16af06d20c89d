package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a question. The upstream corpus has used both numeric and
// string identifiers, so decoding accepts either and stores the canonical
// string form.
type ID string

// ChoiceID identifies a choice within one question.
type ChoiceID string

func (i *ID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexible(data)
	if err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*i = ID(s)
	return nil
}

func (c *ChoiceID) UnmarshalJSON(data []byte) error {
	s, err := decodeFlexible(data)
	if err != nil {
		return fmt.Errorf("choice id: %w", err)
	}
	*c = ChoiceID(s)
	return nil
}

// decodeFlexible accepts a JSON string or number and returns its string form.
func decodeFlexible(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// Choice is one selectable answer.
type Choice struct {
	ID   ChoiceID `json:"id"`
	Text string   `json:"texto"`
}

// Media is presentation metadata carried through untouched.
type Media struct {
	Image      string `json:"imagem,omitempty"`
	Caption    string `json:"legendaImagem,omitempty"`
	Before     string `json:"enunciadoAntes,omitempty"`
	After      string `json:"enunciadoDepois,omitempty"`
	ImageFirst bool   `json:"imagemAntes,omitempty"`
}

// Question mirrors the record served by the question API.
type Question struct {
	ID            ID       `json:"id"`
	Role          string   `json:"cargo"`
	Level         string   `json:"nivel"`
	Source        string   `json:"banca"`
	Exam          string   `json:"prova,omitempty"`
	Statement     string   `json:"enunciado"`
	Choices       []Choice `json:"alternativas"`
	CorrectChoice ChoiceID `json:"resposta_correta"`
	Media         *Media   `json:"media,omitempty"`
}

// HasChoice reports whether c is one of the question's choices.
func (q Question) HasChoice(c ChoiceID) bool {
	for _, choice := range q.Choices {
		if choice.ID == c {
			return true
		}
	}
	return false
}

// ChoiceText returns the text of choice c, or "" if it does not exist.
func (q Question) ChoiceText(c ChoiceID) string {
	for _, choice := range q.Choices {
		if choice.ID == c {
			return choice.Text
		}
	}
	return ""
}
