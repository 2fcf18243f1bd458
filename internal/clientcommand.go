package internal

import (
	"strconv"
	"strings"
)

// Client commands, sent as "<cmd> <arg>".
const (
	cmdLoad    = "load"
	cmdSets    = "sets"
	cmdCurrent = "current"
	cmdSelect  = "select"
	cmdNext    = "next"
	cmdPrev    = "prev"
	cmdJump    = "jump"
	cmdReveal  = "reveal"
	cmdHide    = "hide"
	cmdReset   = "reset"
	cmdStats   = "stats"
	cmdResult  = "result"

	// generated by the read pump, never sent by the browser
	cmdThrottled = "throttled"
)

type ClientCommand struct {
	client *Client
	cmd    string
	arg    string
}

func NewClientCommand(client *Client, message []byte) *ClientCommand {
	cmd, arg := parseCommand(message)
	return &ClientCommand{
		client: client,
		cmd:    cmd,
		arg:    arg,
	}
}

func parseCommand(b []byte) (string, string) {
	s := strings.TrimSpace(string(b))
	space := strings.Index(s, " ")
	if space == -1 {
		return strings.ToLower(s), ""
	}
	return strings.ToLower(s[:space]), strings.TrimSpace(s[space+1:])
}

func (c *ClientCommand) intArg() (int, error) {
	return strconv.Atoi(c.arg)
}
