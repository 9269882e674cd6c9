package fitness

// tier awards points when match holds. Tiers are checked in order, first match wins.
type tier struct {
	match  func(v float64) bool
	points int
}

type rubric struct {
	tiers []tier
	floor int
}

func (r rubric) points(v float64) int {
	for _, t := range r.tiers {
		if t.match(v) {
			return t.points
		}
	}
	return r.floor
}

func closed(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

func halfOpen(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v < hi }
}

func atMost(max float64) func(float64) bool {
	return func(v float64) bool { return v <= max }
}

func atLeast(min float64) func(float64) bool {
	return func(v float64) bool { return v >= min }
}

// BMI between 24.9 and 25.0 (and 29.9–30.0) matches no tier and gets the floor.
var bmiRubric = rubric{
	tiers: []tier{
		{closed(18.5, 24.9), 25},
		{halfOpen(17, 18.5), 20},
		{closed(25, 29.9), 20},
		{halfOpen(16, 17), 15},
		{closed(30, 34.9), 15},
	},
	floor: 10,
}

var runningRubric = rubric{
	tiers: []tier{
		{atMost(8), 25},
		{atMost(10), 20},
		{atMost(12), 15},
		{atMost(15), 10},
	},
	floor: 5,
}

var sitUpsRubric = rubric{
	tiers: []tier{
		{atLeast(50), 25},
		{atLeast(40), 20},
		{atLeast(30), 15},
		{atLeast(20), 10},
	},
	floor: 5,
}

var pushUpsRubric = rubric{
	tiers: []tier{
		{atLeast(30), 25},
		{atLeast(25), 20},
		{atLeast(20), 15},
		{atLeast(15), 10},
	},
	floor: 5,
}
