package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

func TestRelatedCmd_Use(t *testing.T) {
	assert.Equal(t, "related [entity-id]", relatedCmd.Use)
}

func TestRelatedCmd_HasDepthFlag(t *testing.T) {
	flag := relatedCmd.Flags().Lookup("depth")
	require.NotNil(t, flag, "depth flag should exist")
	assert.Equal(t, "d", flag.Shorthand)
	assert.Equal(t, "2", flag.DefValue)
}

func TestRelatedCmd_ListsNeighbours(t *testing.T) {
	mock := &mockRetrievalService{
		related: []domain.Candidate{
			{EntityID: "ent-n1", Title: "TokenRefresher", RelationshipDepth: 1, GraphScore: 0.7},
		},
	}
	cleanup := setupMockService(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"related", "-d", "3", "ent-a"})
	defer func() {
		rootCmd.SetArgs(nil)
		relatedDepth = domain.DefaultMaxDepth
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "ent-a", mock.lastQuery)
	assert.Equal(t, 3, mock.lastDepth)
	assert.Contains(t, buf.String(), "TokenRefresher")
	assert.Contains(t, buf.String(), "depth 1")
}

func TestRelatedCmd_NoNeighbours(t *testing.T) {
	cleanup := setupMockService(&mockRetrievalService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"related", "ent-a"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No related entities found")
}

func TestRelatedCmd_ServiceError(t *testing.T) {
	cleanup := setupMockService(&mockRetrievalService{err: errBackendDown})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"related", "ent-a"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "related lookup failed")
}
