package common

import (
	"bytes"
	"encoding/json"
	"strings"
)

func ConvertToJSON(input interface{}) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(input); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// FormatReply builds a message in the "<command> <json>" form understood by
// the browser.
func FormatReply(command string, payload interface{}) (string, error) {
	if payload == nil {
		return command, nil
	}
	encoded, err := ConvertToJSON(payload)
	if err != nil {
		return "", err
	}
	return command + " " + encoded, nil
}
