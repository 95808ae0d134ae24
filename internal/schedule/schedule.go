// FILENAME: internal/schedule/schedule.go
package schedule

// Slots returns how many seats may eat in a single round.
func Slots(n int) int {
	return n / 2
}

// Candidates returns the seats allowed to eat in the given round.
// Seats are picked starting at the round number and skipping every other
// seat, wrapping around the table. For an odd table the wrap makes the
// selection asymmetric; that is intended.
func Candidates(round, n int) []int {
	if n <= 0 {
		return nil
	}
	slots := Slots(n)
	out := make([]int, 0, slots)
	for i := 0; i < slots; i++ {
		out = append(out, mod(round+2*i, n))
	}
	return out
}

// Matches counts the candidate positions of the round that point at id.
func Matches(round, n, id int) int {
	matches := 0
	for _, c := range Candidates(round, n) {
		if c == id {
			matches++
		}
	}
	return matches
}

// Eligible reports whether seat id eats in the given round.
func Eligible(round, n, id int) bool {
	return Matches(round, n, id) > 0
}

// Plan returns the candidates for every round of one full cycle.
func Plan(n int) [][]int {
	plan := make([][]int, n)
	for r := 0; r < n; r++ {
		plan[r] = Candidates(r, n)
	}
	return plan
}

// MealsAfter returns how many times seat id eats over the first rounds
// rounds, starting from round 0.
func MealsAfter(rounds, n, id int) int {
	if n <= 0 {
		return 0
	}
	meals := 0
	for r := 0; r < rounds; r++ {
		meals += Matches(r%n, n, id)
	}
	return meals
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
