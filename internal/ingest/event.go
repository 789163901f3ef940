package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tidwall/jsonc"
)

const (
	// DefaultEventPathVariable names the environment variable holding the event payload path.
	DefaultEventPathVariable = "GITHUB_EVENT_PATH"
	// DefaultUnknownAuthor is recorded when the event carries no user login.
	DefaultUnknownAuthor = "unknown"

	eventPathUnsetTemplateConstant   = "%w: %s"
	eventFileMissingTemplateConstant = "%w: %s"
	eventReadErrorTemplateConstant   = "unable to read event payload %s: %w"
	eventParseErrorTemplateConstant  = "unable to parse event payload %s: %w"
	eventFileSystemMissingMessage    = "event file system not configured"
)

var (
	// ErrEventPathUnset indicates the event path environment variable is absent or empty.
	ErrEventPathUnset = errors.New("event path environment variable not set")
	// ErrEventFileMissing indicates the event payload file does not exist.
	ErrEventFileMissing = errors.New("event payload file not found")
)

type eventPayload struct {
	Issue *issuePayload `json:"issue"`
}

type issuePayload struct {
	Body    string       `json:"body"`
	HTMLURL string       `json:"html_url"`
	User    *userPayload `json:"user"`
}

type userPayload struct {
	Login string `json:"login"`
}

// EventLoader reads the issue event referenced by an environment variable.
type EventLoader struct {
	fileSystem        FileSystem
	lookupEnvironment EnvironmentLookup
	variableName      string
	unknownAuthor     string
}

// NewEventLoader constructs an EventLoader. Empty names fall back to the defaults.
func NewEventLoader(fileSystem FileSystem, lookupEnvironment EnvironmentLookup, variableName string, unknownAuthor string) *EventLoader {
	trimmedVariableName := strings.TrimSpace(variableName)
	if len(trimmedVariableName) == 0 {
		trimmedVariableName = DefaultEventPathVariable
	}

	trimmedUnknownAuthor := strings.TrimSpace(unknownAuthor)
	if len(trimmedUnknownAuthor) == 0 {
		trimmedUnknownAuthor = DefaultUnknownAuthor
	}

	return &EventLoader{
		fileSystem:        fileSystem,
		lookupEnvironment: lookupEnvironment,
		variableName:      trimmedVariableName,
		unknownAuthor:     trimmedUnknownAuthor,
	}
}

// Load resolves, reads, and decodes the event payload.
func (loader *EventLoader) Load() (IssueEvent, error) {
	if loader.fileSystem == nil {
		return IssueEvent{}, errors.New(eventFileSystemMissingMessage)
	}

	eventPath := ""
	if loader.lookupEnvironment != nil {
		eventPath, _ = loader.lookupEnvironment(loader.variableName)
	}
	eventPath = strings.TrimSpace(eventPath)
	if len(eventPath) == 0 {
		return IssueEvent{}, fmt.Errorf(eventPathUnsetTemplateConstant, ErrEventPathUnset, loader.variableName)
	}

	content, readError := loader.fileSystem.ReadFile(eventPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return IssueEvent{}, fmt.Errorf(eventFileMissingTemplateConstant, ErrEventFileMissing, eventPath)
		}
		return IssueEvent{}, fmt.Errorf(eventReadErrorTemplateConstant, eventPath, readError)
	}

	event, parseError := loader.decode(content)
	if parseError != nil {
		return IssueEvent{}, fmt.Errorf(eventParseErrorTemplateConstant, eventPath, parseError)
	}
	return event, nil
}

func (loader *EventLoader) decode(content []byte) (IssueEvent, error) {
	var payload eventPayload
	if unmarshalError := json.Unmarshal(jsonc.ToJSON(content), &payload); unmarshalError != nil {
		return IssueEvent{}, unmarshalError
	}

	event := IssueEvent{Author: loader.unknownAuthor}
	if payload.Issue == nil {
		return event, nil
	}

	event.Body = payload.Issue.Body
	event.IssueURL = payload.Issue.HTMLURL
	if payload.Issue.User != nil && len(payload.Issue.User.Login) > 0 {
		event.Author = payload.Issue.User.Login
	}
	return event, nil
}
