package main

import (
	"time"

	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/quiz"
)

// seedDemo loads a small demo catalog: two courses with lessons, an
// assignment and a quiz each.
func (cli *commandLine) seedDemo() error {
	now := cli.clock.Now()

	webDev, err := cli.crsSvc.Create(system, course.NewCourse{
		Title:       "Introduction to Web Development",
		Description: "Build your first pages with HTML, CSS and JavaScript.",
		Lessons: []course.NewLesson{
			{Title: "HTML Basics", Content: "Elements, tags and document structure.", ContentType: course.ContentText},
			{Title: "CSS Fundamentals", Content: "https://videos.example.com/css-fundamentals", ContentType: course.ContentVideo},
			{Title: "JavaScript Essentials", Content: "Variables, functions and the DOM.", ContentType: course.ContentText},
		},
	})
	if err != nil {
		return err
	}

	golang, err := cli.crsSvc.Create(system, course.NewCourse{
		Title:       "Programming in Go",
		Description: "From syntax to services: a practical tour of Go.",
		Lessons: []course.NewLesson{
			{Title: "Getting Started", Content: "Installing the toolchain and writing hello world.", ContentType: course.ContentText},
			{Title: "Structs and Interfaces", Content: "https://videos.example.com/go-structs", ContentType: course.ContentVideo},
		},
	})
	if err != nil {
		return err
	}

	if _, err := cli.asgSvc.Create(system, assignment.NewAssignment{
		CourseID:    webDev.ID,
		Title:       "Build a Landing Page",
		Description: "Create a responsive landing page using only HTML and CSS.",
		DueDate:     now.Add(14 * 24 * time.Hour),
		MaxPoints:   100,
	}); err != nil {
		return err
	}
	if _, err := cli.asgSvc.Create(system, assignment.NewAssignment{
		CourseID:    golang.ID,
		Title:       "Write a CLI Tool",
		Description: "Implement a small command line tool with the flag package.",
		DueDate:     now.Add(21 * 24 * time.Hour),
		MaxPoints:   50,
	}); err != nil {
		return err
	}

	if _, err := cli.quizSvc.Create(system, quiz.NewQuiz{
		CourseID:    webDev.ID,
		Title:       "HTML & CSS Quiz",
		Description: "Check your understanding of the basics.",
		TimeLimit:   15,
		MaxAttempts: 3,
		Questions: []quiz.NewQuestion{
			{
				Text:          "Which tag defines a hyperlink?",
				Type:          quiz.TypeMultipleChoice,
				Options:       []string{"<a>", "<link>", "<href>", "<url>"},
				CorrectAnswer: 0,
				Points:        10,
			},
			{
				Text:          "CSS stands for Cascading Style Sheets.",
				Type:          quiz.TypeTrueFalse,
				Options:       []string{"True", "False"},
				CorrectAnswer: 0,
				Points:        10,
			},
		},
	}); err != nil {
		return err
	}
	if _, err := cli.quizSvc.Create(system, quiz.NewQuiz{
		CourseID:    golang.ID,
		Title:       "Go Fundamentals Quiz",
		Description: "Syntax and types.",
		MaxAttempts: 2,
		Questions: []quiz.NewQuestion{
			{
				Text:          "Which keyword declares a new type?",
				Type:          quiz.TypeMultipleChoice,
				Options:       []string{"type", "struct", "var", "def"},
				CorrectAnswer: 0,
				Points:        10,
			},
		},
	}); err != nil {
		return err
	}

	logger.Println("demo data seeded")
	return nil
}
