package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gt "nickandperla.net/genetic_tsp"
)

func seedHistory(t *testing.T, dir string) string {
	t.Helper()
	log, err := gt.NewLogger(gt.LogConfig{Level: "error"})
	require.NoError(t, err)
	persist, err := gt.NewPersistence(&gt.PersistenceConfig{Path: dir, Name: "runs.db"}, log)
	require.NoError(t, err)
	defer persist.Shutdown()

	points := []gt.Point{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 3, Y: 0}, {ID: 3, X: 3, Y: 4}}
	config := gt.EngineConfig{PopulationSize: 4, Generations: 2, MutationChance: gt.DefaultMutationChance}
	run, err := persist.StartRun("triangle.tsp", len(points), config, 11)
	require.NoError(t, err)
	rec := persist.NewRecorder(run, 10)

	engine, err := gt.NewGenerationEngine(points, config, gt.NewRNG(11), log, rec)
	require.NoError(t, err)
	result, runErr := engine.Run(context.Background())
	require.NoError(t, runErr)
	require.NoError(t, rec.Flush())
	require.NoError(t, persist.FinishRun(run, result, nil))
	return run.ID
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := newRootCommand(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestListAndShow(t *testing.T) {
	dir := t.TempDir()
	id := seedHistory(t, dir)
	db := dir + "/runs.db"

	out, err := execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "12.0000")
	assert.Contains(t, out, "2/2")

	out, err = execute(t, "show", id, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "run "+id+" (finished)")
	assert.Contains(t, out, "input=triangle.tsp points=3")
	assert.Contains(t, out, "best=12.0000 found at generation 0")
	assert.Contains(t, out, "tour:\n")

	_, err = execute(t, "show", "missing", "--db", db)
	assert.Error(t, err)
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir)
	seedHistory(t, dir)
	db := dir + "/runs.db"

	out, err := execute(t, "prune", "--keep", "1", "--dry-run", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "prune (dry run):")
	assert.Regexp(t, `Runs deleted:\s+1`, out)
	assert.Regexp(t, `Generation stats deleted:\s+3`, out)

	out, err = execute(t, "prune", "--keep", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "prune complete:")

	out, err = execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("\n")), "header plus one run")
}

func TestNeedsHistory(t *testing.T) {
	_, err := execute(t, "list")
	assert.ErrorIs(t, err, gt.ErrConfiguration)
}
