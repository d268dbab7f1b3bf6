package org

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrAccountNotFound    = errors.New("account not found")

	// ErrAccountExists signals an attempt to create a second account for an
	// employee that already has one; existing accounts are never overwritten.
	ErrAccountExists = errors.New("account already exists for employee")

	ErrLoginTaken = errors.New("login already taken")
)
