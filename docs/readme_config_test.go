package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/SocialCareData/initiatives/cmd/cli"
	"github.com/SocialCareData/initiatives/internal/ingest"
	"github.com/SocialCareData/initiatives/internal/utils"
	"github.com/SocialCareData/initiatives/internal/validate"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "readme-config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	unexpectedSectionMessageTemplate = "unexpected tools section %s"
)

var expectedToolSections = map[string]struct{}{
	"ingest":   {},
	"validate": {},
}

type readmeConfiguration struct {
	Tools map[string]map[string]any `yaml:"tools"`
}

func readReadmeSnippet(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	contentBytes, readError := os.ReadFile(filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant))
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationMatchesDefaults(testInstance *testing.T) {
	snippetContent := readReadmeSnippet(testInstance)

	var sections readmeConfiguration
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &sections))
	require.Len(testInstance, sections.Tools, len(expectedToolSections))
	for sectionName := range sections.Tools {
		_, expected := expectedToolSections[sectionName]
		require.Truef(testInstance, expected, unexpectedSectionMessageTemplate, sectionName)
	}

	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(snippetContent), 0o644))

	loader := utils.NewConfigurationLoader("config", "yaml", "INITIATIVES_README", nil)
	var configuration cli.ApplicationConfiguration
	_, loadError := loader.LoadConfiguration(snippetPath, nil, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, string(utils.LogLevelInfo), configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatStructured), configuration.Common.LogFormat)
	require.Equal(testInstance, ingest.DefaultCommandConfiguration(), configuration.Tools.Ingest)
	require.Equal(testInstance, validate.DefaultCommandConfiguration(), configuration.Tools.Validate)
}
