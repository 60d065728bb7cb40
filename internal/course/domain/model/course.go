package model

import (
	"errors"
	"time"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// CourseStatus is the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "Draft"
	CourseStatusPublished CourseStatus = "Published"
)

// Course is an offering created by an instructor
type Course struct {
	ID                string       `json:"_id" bson:"_id,omitempty"`
	CourseName        string       `json:"courseName" bson:"courseName"`
	CourseDescription string       `json:"courseDescription" bson:"courseDescription"`
	Instructor        string       `json:"instructor" bson:"instructor"`
	WhatYouWillLearn  string       `json:"whatYouWillLearn" bson:"whatYouWillLearn"`
	Price             float64      `json:"price" bson:"price"`
	Tag               []string     `json:"tag" bson:"tag"`
	Category          string       `json:"category" bson:"category"`
	Thumbnail         string       `json:"thumbnail" bson:"thumbnail"`
	Status            CourseStatus `json:"status" bson:"status"`
	Instructions      []string     `json:"instructions" bson:"instructions"`
	CreatedAt         time.Time    `json:"createdAt" bson:"createdAt"`
}

// Category groups courses
type Category struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Courses     []string  `json:"courses" bson:"courses"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
