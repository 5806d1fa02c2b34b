package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// InstanceInput mirrors the JSON problem description. Courses reference
// teachers and curricula reference courses by name; Instance resolves the
// names into indices.
type InstanceInput struct {
	Name             string
	Days             int
	PeriodsPerDay    int `mapstructure:"periodsPerDay"`
	Courses          []CourseInput
	Rooms            []RoomInput
	Curricula        []CurriculumInput
	Unavailabilities []UnavailabilityInput
}

type CourseInput struct {
	Name     string
	Teacher  string
	Lectures int
	MinDays  int `mapstructure:"minDays"`
	Students int
	RoomType int `mapstructure:"roomType"`
}

type RoomInput struct {
	Name     string
	Capacity int
	RoomType int `mapstructure:"roomType"`
}

type CurriculumInput struct {
	Name    string
	Courses []string
}

type UnavailabilityInput struct {
	Course string
	Day    int
	Period int
}

// Instance resolves the input's name references and returns a validated
// Instance. Teachers are catalogued in order of first appearance among the
// courses, the way the raw description lists them.
func (input InstanceInput) Instance() (Instance, error) {
	instance := Instance{
		Name:          input.Name,
		Days:          input.Days,
		PeriodsPerDay: input.PeriodsPerDay,
	}

	teacherIds := make(map[string]int)
	courseIds := make(map[string]int)

	for _, course := range input.Courses {
		teacher, catalogued := teacherIds[course.Teacher]
		if !catalogued {
			teacher = len(instance.Teachers)
			teacherIds[course.Teacher] = teacher
			instance.Teachers = append(instance.Teachers, Teacher{Name: course.Teacher})
		}

		if _, duplicated := courseIds[course.Name]; duplicated {
			return Instance{}, fmt.Errorf("course %v is declared twice", course.Name)
		}
		courseIds[course.Name] = len(instance.Courses)

		instance.Courses = append(instance.Courses, Course{
			Name:     course.Name,
			Teacher:  teacher,
			Lectures: course.Lectures,
			MinDays:  course.MinDays,
			Students: course.Students,
			RoomType: course.RoomType,
		})
	}

	for _, room := range input.Rooms {
		instance.Rooms = append(instance.Rooms, Room{
			Name:     room.Name,
			Capacity: room.Capacity,
			RoomType: room.RoomType,
		})
	}

	for _, curriculum := range input.Curricula {
		members := make([]int, 0, len(curriculum.Courses))
		for _, name := range curriculum.Courses {
			course, known := courseIds[name]
			if !known {
				return Instance{}, fmt.Errorf("curriculum %v references unknown course %v", curriculum.Name, name)
			}
			members = append(members, course)
		}
		instance.Curricula = append(instance.Curricula, Curriculum{
			Name:    curriculum.Name,
			Courses: members,
		})
	}

	for _, unavailability := range input.Unavailabilities {
		course, known := courseIds[unavailability.Course]
		if !known {
			return Instance{}, fmt.Errorf("unavailability references unknown course %v", unavailability.Course)
		}
		instance.Unavailabilities = append(instance.Unavailabilities, Unavailability{
			Course: course,
			Day:    unavailability.Day,
			Period: unavailability.Period,
		})
	}

	if err := instance.Validate(); err != nil {
		return Instance{}, err
	}

	return instance, nil
}

// InputFromJson reads a problem description from a JSON file.
func InputFromJson(file string) (InstanceInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return InstanceInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return InstanceInput{}, err
	}

	var input InstanceInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return InstanceInput{}, err
	}

	return input, nil
}
