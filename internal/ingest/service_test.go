package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SocialCareData/initiatives/internal/ingest"
	"github.com/SocialCareData/initiatives/internal/issueform"
	"github.com/SocialCareData/initiatives/internal/registry"
)

const testRegistryPathConstant = "data/initiatives.csv"

type stubClock struct {
	now time.Time
}

func (clock stubClock) Now() time.Time {
	return clock.now
}

type stubEventSource struct {
	event ingest.IssueEvent
	err   error
}

func (source stubEventSource) Load() (ingest.IssueEvent, error) {
	return source.event, source.err
}

type recordingStore struct {
	rows        []registry.Row
	loadError   error
	writeCount  int
	writtenPath string
	writtenRows []registry.Row
}

func (store *recordingStore) Load(path string) ([]registry.Row, error) {
	if store.loadError != nil {
		return nil, store.loadError
	}
	return store.rows, nil
}

func (store *recordingStore) Write(path string, rows []registry.Row) error {
	store.writeCount++
	store.writtenPath = path
	store.writtenRows = rows
	return nil
}

func fixedClock() stubClock {
	return stubClock{now: time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)}
}

func TestNewServiceRequiresDependencies(testInstance *testing.T) {
	_, serviceError := ingest.NewService(ingest.ServiceDependencies{})
	require.Error(testInstance, serviceError)

	_, serviceError = ingest.NewService(ingest.ServiceDependencies{Store: &recordingStore{}, Extractor: issueform.NewExtractor(nil)})
	require.Error(testInstance, serviceError)
}

func TestServiceRunAddsAndReports(testInstance *testing.T) {
	store := &recordingStore{rows: []registry.Row{}}
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	service, serviceError := ingest.NewService(ingest.ServiceDependencies{
		Store:     store,
		Extractor: issueform.NewExtractor(nil),
		EventSource: stubEventSource{event: ingest.IssueEvent{
			Body:     "### slug\nacme-spec\n### name\nAcme Spec",
			IssueURL: testIssueURLConstant,
			Author:   testAuthorConstant,
		}},
		Clock:        fixedClock(),
		OutputWriter: outputBuffer,
		ErrorWriter:  errorBuffer,
	})
	require.NoError(testInstance, serviceError)

	outcome, runError := service.Run(context.Background(), ingest.Options{RegistryPath: testRegistryPathConstant})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, ingest.Outcome{Slug: "acme-spec", Action: ingest.ActionAdded}, outcome)

	require.Equal(testInstance, 1, store.writeCount)
	require.Equal(testInstance, testRegistryPathConstant, store.writtenPath)
	require.Len(testInstance, store.writtenRows, 1)
	require.Equal(testInstance, testTodayConstant, store.writtenRows[0].Value(registry.ColumnLastUpdatedDate))
	require.Equal(testInstance, "Ingested issue into data/initiatives.csv (slug=acme-spec, added)\n", outputBuffer.String())
	require.Empty(testInstance, errorBuffer.String())
}

func TestServiceRunMissingSlugProceeds(testInstance *testing.T) {
	store := &recordingStore{}
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	service, serviceError := ingest.NewService(ingest.ServiceDependencies{
		Store:        store,
		Extractor:    issueform.NewExtractor(nil),
		EventSource:  stubEventSource{event: ingest.IssueEvent{Body: "### name\nNameless", Author: testAuthorConstant}},
		Clock:        fixedClock(),
		OutputWriter: outputBuffer,
		ErrorWriter:  errorBuffer,
	})
	require.NoError(testInstance, serviceError)

	outcome, runError := service.Run(context.Background(), ingest.Options{RegistryPath: testRegistryPathConstant})
	require.NoError(testInstance, runError)
	require.True(testInstance, outcome.MissingSlug)
	require.Equal(testInstance, 1, store.writeCount)
	require.Equal(testInstance, "ERROR: 'slug' is required in the issue form\n", errorBuffer.String())
	require.Equal(testInstance, "Ingested issue into data/initiatives.csv (slug=, added)\n", outputBuffer.String())
}

func TestServiceRunFailuresSkipWrite(testInstance *testing.T) {
	testCases := []struct {
		name        string
		eventSource stubEventSource
		loadError   error
		expected    error
	}{
		{
			name:        "event_unavailable",
			eventSource: stubEventSource{err: ingest.ErrEventPathUnset},
			expected:    ingest.ErrEventPathUnset,
		},
		{
			name:        "registry_unreadable",
			eventSource: stubEventSource{event: ingest.IssueEvent{Body: "### slug\nacme"}},
			loadError:   errors.New("registry unreadable"),
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			store := &recordingStore{loadError: testCase.loadError}
			outputBuffer := &bytes.Buffer{}

			service, serviceError := ingest.NewService(ingest.ServiceDependencies{
				Store:        store,
				Extractor:    issueform.NewExtractor(nil),
				EventSource:  testCase.eventSource,
				OutputWriter: outputBuffer,
			})
			require.NoError(testInstance, serviceError)

			_, runError := service.Run(context.Background(), ingest.Options{RegistryPath: testRegistryPathConstant})
			require.Error(testInstance, runError)
			if testCase.expected != nil {
				require.True(testInstance, errors.Is(runError, testCase.expected))
			}
			require.Zero(testInstance, store.writeCount)
			require.Empty(testInstance, outputBuffer.String())
		})
	}
}
