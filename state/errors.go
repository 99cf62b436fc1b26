/*
Copyright 2024 Robert Terhaar <robbyt@robbyt.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package state

import "errors"

var (
	// ErrInvalidState is returned when a state is not one of the declared states.
	ErrInvalidState = errors.New("state is invalid")

	// ErrInvalidTransition is returned when the table has no edge between two states.
	ErrInvalidTransition = errors.New("state transition is invalid")

	// ErrEmptyTable is returned when a transition table has no edges.
	ErrEmptyTable = errors.New("transition table cannot be empty")
)
