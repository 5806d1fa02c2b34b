package model

type preprocessorImplementation struct{}

func (preprocessor *preprocessorImplementation) BuildMembership(instance Instance) [][]bool {
	membership := make([][]bool, len(instance.Courses))
	for course := range membership {
		membership[course] = make([]bool, len(instance.Curricula))
	}

	for curriculum, members := range instance.Curricula {
		for _, course := range members.Courses {
			membership[course][curriculum] = true
		}
	}

	return membership
}

func (preprocessor *preprocessorImplementation) BuildUnavailability(instance Instance) [][]bool {
	unavailable := make([][]bool, len(instance.Courses))
	for course := range unavailable {
		unavailable[course] = make([]bool, instance.TotalPeriods())
	}

	for _, rule := range instance.Unavailabilities {
		period := rule.Day*instance.PeriodsPerDay + rule.Period
		unavailable[rule.Course][period] = true
	}

	return unavailable
}
