package skillgap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		skills       []string
		requirements []string
		matched      []string
		missing      []string
		completion   int
	}{
		{
			name:         "partial coverage",
			skills:       []string{"React", "TypeScript", "Node.js"},
			requirements: []string{"React", "TypeScript", "Node.js", "GraphQL", "AWS"},
			matched:      []string{"React", "TypeScript", "Node.js"},
			missing:      []string{"GraphQL", "AWS"},
			completion:   60,
		},
		{
			name:         "substring does not cross unrelated names",
			skills:       []string{"JavaScript"},
			requirements: []string{"JavaScript", "TypeScript"},
			matched:      []string{"JavaScript"},
			missing:      []string{"TypeScript"},
			completion:   50,
		},
		{
			name:         "empty requirements",
			skills:       []string{"Python"},
			requirements: []string{},
			matched:      []string{},
			missing:      []string{},
			completion:   0,
		},
		{
			name:         "empty skills",
			skills:       nil,
			requirements: []string{"SQL", "Python"},
			matched:      []string{},
			missing:      []string{"SQL", "Python"},
			completion:   0,
		},
		{
			name:         "skill inside requirement",
			skills:       []string{"java"},
			requirements: []string{"JavaScript", "Go"},
			matched:      []string{"JavaScript"},
			missing:      []string{"Go"},
			completion:   50,
		},
		{
			name:         "requirement inside skill",
			skills:       []string{"HTML/CSS and accessibility"},
			requirements: []string{"html/css"},
			matched:      []string{"html/css"},
			missing:      []string{},
			completion:   100,
		},
		{
			name:         "rounds to nearest",
			skills:       []string{"Python", "SQL"},
			requirements: []string{"Python", "Statistics", "SQL", "MLOps", "Deep Learning", "TensorFlow"},
			matched:      []string{"Python", "SQL"},
			missing:      []string{"Statistics", "MLOps", "Deep Learning", "TensorFlow"},
			completion:   33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MatchContains(tt.skills, tt.requirements)
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.missing, got.Missing)
			assert.Equal(t, tt.completion, got.CompletionPercentage)
		})
	}
}

func TestMatchExact(t *testing.T) {
	t.Parallel()

	got := MatchExact(
		[]string{"react", "JavaScript", "Python", "Git"},
		[]string{"React", "JavaScript", "Python", "Git", "TypeScript", "AWS", "Docker", "Kubernetes", "GraphQL"},
	)

	assert.Equal(t, []string{"React", "JavaScript", "Python", "Git"}, got.Matched)
	assert.Equal(t, []string{"TypeScript", "AWS", "Docker", "Kubernetes", "GraphQL"}, got.Missing)
	assert.Equal(t, 44, got.CompletionPercentage)

	loose := MatchExact([]string{"Java"}, []string{"JavaScript"})
	assert.Empty(t, loose.Matched)
	assert.Equal(t, []string{"JavaScript"}, loose.Missing)
}

func TestMatchPartitionsRequirements(t *testing.T) {
	t.Parallel()

	skills := []string{"Go", "Docker", "sql"}
	requirements := []string{"Kubernetes", "Go", "PostgreSQL", "Docker", "Go", "Rust"}

	for _, strategy := range []Strategy{Containment, Exact} {
		result := Match(strategy, skills, requirements)
		require.Equal(t, len(requirements), result.Total(), strategy.String())

		// Walking both partitions in order must rebuild the requirement list.
		var m, n int
		for _, requirement := range requirements {
			switch {
			case m < len(result.Matched) && result.Matched[m] == requirement:
				m++
			case n < len(result.Missing) && result.Missing[n] == requirement:
				n++
			default:
				t.Fatalf("%s: requirement %q is out of order or missing", strategy, requirement)
			}
		}
	}
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	skills := []string{"React", "NODE.js"}
	requirements := []string{"react", "Node.js", "AWS"}

	_ = MatchContains(skills, requirements)

	assert.Equal(t, []string{"React", "NODE.js"}, skills)
	assert.Equal(t, []string{"react", "Node.js", "AWS"}, requirements)
}

func TestMatchConcurrentCallers(t *testing.T) {
	t.Parallel()

	skills := []string{"React", "typescript", "Node.js", "java"}
	requirements := []string{"React", "TypeScript", "JavaScript", "GraphQL", "AWS", "Node.js"}

	want := map[Strategy]Result{
		Containment: Match(Containment, skills, requirements),
		Exact:       Match(Exact, skills, requirements),
	}

	const workers = 32
	results := make([]Result, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = MatchContains(skills, requirements)
				return
			}
			results[i] = MatchExact(skills, requirements)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if i%2 == 0 {
			assert.Equal(t, want[Containment], got, "worker %d", i)
			continue
		}
		assert.Equal(t, want[Exact], got, "worker %d", i)
	}
	assert.Equal(t, []string{"React", "typescript", "Node.js", "java"}, skills)
	assert.Equal(t, []string{"React", "TypeScript", "JavaScript", "GraphQL", "AWS", "Node.js"}, requirements)
}

func TestCompletionIsMonotonic(t *testing.T) {
	t.Parallel()

	requirements := []string{"Docker", "Kubernetes", "AWS", "CI/CD", "Linux", "Terraform"}
	pool := []string{"linux", "Terraform Cloud", "aws", "Docker", "Ansible", "ci/cd"}

	var skills []string
	previous := MatchContains(skills, requirements).CompletionPercentage
	for _, skill := range pool {
		skills = append(skills, skill)
		current := MatchContains(skills, requirements).CompletionPercentage
		assert.GreaterOrEqual(t, current, previous, "after adding %q", skill)
		previous = current
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Completion(0, 0))
	assert.Equal(t, 0, Completion(3, -1))
	assert.Equal(t, 67, Completion(2, 3))
	assert.Equal(t, 50, Completion(1, 2))
	assert.Equal(t, 100, Completion(5, 5))
}

func TestResultIsComplete(t *testing.T) {
	t.Parallel()

	assert.False(t, MatchContains([]string{"Go"}, nil).IsComplete())
	assert.True(t, MatchContains([]string{"Go"}, []string{"go"}).IsComplete())
	assert.False(t, MatchContains([]string{"Go"}, []string{"go", "Rust"}).IsComplete())
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Strategy{
		"contains":    Containment,
		"Containment": Containment,
		"":            Containment,
		" EXACT ":     Exact,
	} {
		got, err := ParseStrategy(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseStrategy("fuzzy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy")
	assert.Equal(t, "strategy(7)", fmt.Sprint(Strategy(7)))
}
