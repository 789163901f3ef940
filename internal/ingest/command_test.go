package ingest_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SocialCareData/initiatives/internal/filesystem"
	"github.com/SocialCareData/initiatives/internal/ingest"
	"github.com/SocialCareData/initiatives/internal/registry"
	"github.com/SocialCareData/initiatives/internal/utils"
)

const testEventPayloadConstant = `{"issue":{"body":"### slug\nacme-spec\n\n### name\n` + "```" + `\nAcme Spec\n` + "```" + `\n","html_url":"https://github.com/example/registry/issues/7","user":{"login":"octocat"}}}`

type commandFixture struct {
	registryPath string
	eventPath    string
	builder      ingest.CommandBuilder
}

func newCommandFixture(testInstance *testing.T, configuration ingest.CommandConfiguration) commandFixture {
	testInstance.Helper()
	workingDirectory := testInstance.TempDir()
	eventPath := filepath.Join(workingDirectory, testEventFileNameConstant)
	require.NoError(testInstance, os.WriteFile(eventPath, []byte(testEventPayloadConstant), 0o644))

	return commandFixture{
		registryPath: filepath.Join(workingDirectory, "initiatives.csv"),
		eventPath:    eventPath,
		builder: ingest.CommandBuilder{
			LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
			ConfigurationProvider: func() ingest.CommandConfiguration { return configuration },
			EnvironmentLookup:     environmentWith(map[string]string{configuration.Sanitize().EventPathVariable: eventPath}),
			Clock:                 fixedClock(),
		},
	}
}

func executeIngest(testInstance *testing.T, builder ingest.CommandBuilder, arguments []string) (string, string, error) {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(errorBuffer)
	command.SilenceUsage = true
	command.SilenceErrors = true
	command.SetArgs(arguments)

	executionError := command.Execute()
	return outputBuffer.String(), errorBuffer.String(), executionError
}

func TestIngestCommandAddsThenUpdates(testInstance *testing.T) {
	fixture := newCommandFixture(testInstance, ingest.DefaultCommandConfiguration())

	output, _, executionError := executeIngest(testInstance, fixture.builder, []string{fixture.registryPath})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "Ingested issue into "+fixture.registryPath+" (slug=acme-spec, added)\n", output)

	content, readError := os.ReadFile(fixture.registryPath)
	require.NoError(testInstance, readError)
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	require.Len(testInstance, lines, 2)
	require.True(testInstance, strings.HasPrefix(lines[1], "acme-spec,Acme Spec,"))
	require.True(testInstance, strings.HasSuffix(lines[1], ",not-contacted,medium,,,,,,https://github.com/example/registry/issues/7,2026-10-17,octocat"))

	output, _, executionError = executeIngest(testInstance, fixture.builder, []string{fixture.registryPath})
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "(slug=acme-spec, updated)")

	secondContent, readError := os.ReadFile(fixture.registryPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, string(content), string(secondContent))
}

func TestIngestCommandCRLFToggle(testInstance *testing.T) {
	fixture := newCommandFixture(testInstance, ingest.DefaultCommandConfiguration())

	_, _, executionError := executeIngest(testInstance, fixture.builder, []string{"--crlf", fixture.registryPath})
	require.NoError(testInstance, executionError)

	content, readError := os.ReadFile(fixture.registryPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, 2, strings.Count(string(content), "\r\n"))
}

func TestIngestCommandHonorsConfiguredVariable(testInstance *testing.T) {
	configuration := ingest.DefaultCommandConfiguration()
	configuration.EventPathVariable = "REGISTRY_EVENT"
	configuration.FormFields = []string{"slug"}
	fixture := newCommandFixture(testInstance, configuration)

	_, _, executionError := executeIngest(testInstance, fixture.builder, []string{fixture.registryPath})
	require.NoError(testInstance, executionError)

	rows, loadError := registry.NewCSVStore(filesystem.NewOSFileSystem(), registry.StoreOptions{}).Load(fixture.registryPath)
	require.NoError(testInstance, loadError)
	require.Len(testInstance, rows, 1)
	require.Equal(testInstance, "", rows[0].Value(registry.ColumnName))
}

func TestIngestCommandFailures(testInstance *testing.T) {
	fixture := newCommandFixture(testInstance, ingest.DefaultCommandConfiguration())

	_, _, usageError := executeIngest(testInstance, fixture.builder, []string{})
	require.Error(testInstance, usageError)
	require.True(testInstance, utils.IsUsageError(usageError))

	_, _, usageError = executeIngest(testInstance, fixture.builder, []string{"a.csv", "b.csv"})
	require.True(testInstance, utils.IsUsageError(usageError))

	fixture.builder.EnvironmentLookup = environmentWith(map[string]string{})
	_, _, eventError := executeIngest(testInstance, fixture.builder, []string{fixture.registryPath})
	require.Error(testInstance, eventError)
	require.False(testInstance, utils.IsUsageError(eventError))
	require.True(testInstance, errors.Is(eventError, ingest.ErrEventPathUnset))

	_, statError := os.Stat(fixture.registryPath)
	require.True(testInstance, errors.Is(statError, os.ErrNotExist))
}
