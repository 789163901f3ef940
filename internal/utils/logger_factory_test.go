package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SocialCareData/initiatives/internal/utils"
)

const (
	testSubtestTemplateConstant = "%d_%s"
	testLogMessageConstant      = "registry updated"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
		expectDebugLogged   bool
	}{
		{
			name:                "debug_structured",
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
			expectDebugLogged:   true,
		},
		{
			name:                "info_structured_mixed_case",
			requestedLogLevel:   utils.LogLevel("INFO"),
			requestedLogFormat:  utils.LogFormat("Structured"),
			expectStructuredLog: true,
		},
		{
			name:               "info_console",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               "unsupported_level",
			requestedLogLevel:  utils.LogLevel("verbose"),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               "unsupported_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat("xml"),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			logger, creationError := utils.NewLoggerFactoryWithOutput(outputBuffer).CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)

			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}
			require.NoError(testInstance, creationError)

			logger.Debug("debug detail")
			logger.Info(testLogMessageConstant)
			require.NoError(testInstance, logger.Sync())

			lines := bytes.Split(bytes.TrimSpace(outputBuffer.Bytes()), []byte("\n"))
			if testCase.expectDebugLogged {
				require.Len(testInstance, lines, 2)
			} else {
				require.Len(testInstance, lines, 1)
			}

			lastLine := lines[len(lines)-1]
			require.Contains(testInstance, string(lastLine), testLogMessageConstant)
			require.Equal(testInstance, testCase.expectStructuredLog, json.Valid(lastLine))
		})
	}
}

func TestNewCommandLoggerAddsRunIdentifier(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	baseLogger, creationError := utils.NewLoggerFactoryWithOutput(outputBuffer).CreateLogger(utils.LogLevelInfo, utils.LogFormatStructured)
	require.NoError(testInstance, creationError)

	utils.NewCommandLogger(baseLogger, "validate").Info(testLogMessageConstant)
	utils.NewCommandLogger(baseLogger, "validate").Info(testLogMessageConstant)

	lines := bytes.Split(bytes.TrimSpace(outputBuffer.Bytes()), []byte("\n"))
	require.Len(testInstance, lines, 2)

	runIdentifiers := make([]string, 0, len(lines))
	for _, line := range lines {
		var entry map[string]any
		require.NoError(testInstance, json.Unmarshal(line, &entry))
		require.Equal(testInstance, "validate", entry["command"])
		runIdentifier, isString := entry["run_id"].(string)
		require.True(testInstance, isString)
		require.Len(testInstance, runIdentifier, 36)
		runIdentifiers = append(runIdentifiers, runIdentifier)
	}
	require.NotEqual(testInstance, runIdentifiers[0], runIdentifiers[1])

	require.NotNil(testInstance, utils.NewCommandLogger(nil, "ingest"))
}
