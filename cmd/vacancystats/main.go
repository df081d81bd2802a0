// Package main provides the entry point for the vacancystats CLI.
//
// vacancystats counts vacancies per programming language on HeadHunter and
// SuperJob and prints the average salary each language is offered.
//
// Usage:
//
//	vacancystats <area-id>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
