package db

import (
	"context"
	"fmt"
)

const DemoPassword = "password123"

// SeedDemo fills an empty database with two demo users, two projects, four
// tasks and four participants. It does nothing and returns false when any
// user already exists.
func (s *Store) SeedDemo(ctx context.Context) (bool, error) {
	n, err := s.countUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	user1, err := s.CreateUser(ctx, "demo_user1", "demo1@example.com", DemoPassword)
	if err != nil {
		return false, err
	}
	user2, err := s.CreateUser(ctx, "demo_user2", "demo2@example.com", DemoPassword)
	if err != nil {
		return false, err
	}

	project1, err := s.CreateProject(ctx, user1.ID, "Demo Project 1", "This is a demo project 1")
	if err != nil {
		return false, err
	}
	project2, err := s.CreateProject(ctx, user2.ID, "Demo Project 2", "This is a demo project 2")
	if err != nil {
		return false, err
	}

	tasks := []struct {
		project   int64
		owner     int64
		title     string
		completed bool
	}{
		{project1, user1.ID, "Demo Task 1", false},
		{project1, user1.ID, "Demo Task 2", false},
		{project2, user2.ID, "Demo Task 3", true},
		{project2, user2.ID, "Demo Task 4", true},
	}
	for i, t := range tasks {
		desc := fmt.Sprintf("This is a demo task %d", i+1)
		if _, err := s.CreateTask(ctx, t.project, t.owner, t.title, desc, t.completed); err != nil {
			return false, err
		}
	}

	for _, project := range []int64{project1, project2} {
		for _, user := range []int64{user1.ID, user2.ID} {
			if _, err := s.AddParticipant(ctx, project, user); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
