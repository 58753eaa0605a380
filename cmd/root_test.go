package cmd

import (
	"testing"

	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProj2DisciplineFromIndex(t *testing.T) {
	want := map[int]sim.Discipline{1: sim.FCFS, 2: sim.LCFSNP, 3: sim.SJFNP, 4: sim.PrioNP, 5: sim.PrioP}
	for idx, discipline := range want {
		got, err := proj2DisciplineFromIndex(idx)
		require.NoError(t, err)
		assert.Equal(t, discipline, got)
	}

	_, err := proj2DisciplineFromIndex(0)
	assert.Error(t, err)
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "AVERAGE", priorityLabel(sim.AllPriorities))
	assert.Equal(t, "3", priorityLabel(3))
}

func TestProj1Cmd_RejectsWrongArgCount(t *testing.T) {
	err := proj1Cmd.Args(proj1Cmd, []string{"0.5"})
	assert.Error(t, err)
}
