package mailer

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
)

// DefaultPosition is used when a posting has no title.
const DefaultPosition = "Spring Boot Developer"

// MotivationLetter is the fixed body of every application.
const MotivationLetter = `Dear Hiring Manager,

I hope this message finds you well.

I am writing to express my interest in the Spring Boot Developer position. With strong experience in Java and Spring Boot development, I have worked on building scalable backend systems, designing RESTful APIs, implementing security with Spring Security, and developing full-stack applications integrated with Thymeleaf and modern frontend frameworks.

In my professional journey, I focus on writing clean and maintainable code, optimizing performance, and applying software architecture best practices. I am currently strengthening my knowledge in microservices concepts and system integration, where I actively practice service communication, event-driven design, and distributed system patterns to build more scalable and resilient applications. I also have experience working with databases and backend optimizations for enterprise-level systems.

I am highly motivated to contribute to challenging projects where I can improve backend architecture, enhance system performance, and collaborate effectively with development teams to deliver reliable solutions.

I would welcome the opportunity to further discuss how my skills and continuous learning mindset can add value to your team.

Thank you for your time and consideration.`

// Triple-stash keeps raymond from HTML-escaping a plain-text mail.
var (
	subjectTemplate = raymond.MustParse(`Application: {{{position}}} – {{{company}}}`)
	bodyTemplate    = raymond.MustParse(`{{{letter}}}

Portfolio: {{{portfolio}}}

Best regards,
{{{sender}}}
`)
)

// Content is a rendered application.
type Content struct {
	Subject string
	Body    string
}

// Render fills the subject and body templates.
func Render(company, position, portfolioURL, senderName string) (Content, error) {
	position = strings.TrimSpace(position)
	if position == "" {
		position = DefaultPosition
	}
	ctx := map[string]string{
		"company":   strings.TrimSpace(company),
		"position":  position,
		"letter":    MotivationLetter,
		"portfolio": portfolioURL,
		"sender":    senderName,
	}

	subject, err := subjectTemplate.Exec(ctx)
	if err != nil {
		return Content{}, fmt.Errorf("render subject: %w", err)
	}
	body, err := bodyTemplate.Exec(ctx)
	if err != nil {
		return Content{}, fmt.Errorf("render body: %w", err)
	}
	return Content{Subject: subject, Body: body}, nil
}
