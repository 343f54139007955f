package main

import (
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"averyquinn.dev/portfolio-web/internal/mailer"
	mw "averyquinn.dev/portfolio-web/internal/middleware"
	"averyquinn.dev/portfolio-web/internal/visits"
)

const maxMessageLen = 4000

// ContactPageHandler renders the contact form.
func ContactPageHandler(w http.ResponseWriter, r *http.Request) {
	vm := buildPageData(r, "Contact")
	vm.View = "contact"
	vm.SEO.Description = "Get in touch about work, collaboration, or anything on the blog."
	vm.SEO.Canonical = siteURL + "/contact"
	vm.Contact = &ContactData{}
	render(w, r, vm)
}

// ContactSubmitHandler validates and delivers a contact form submission.
// htmx requests receive a form/success/error fragment; plain posts get the
// full page back.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := &ContactData{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}

	// Honeypot: bots fill the hidden field. Pretend success, do nothing.
	if strings.TrimSpace(r.PostFormValue("website")) != "" {
		data.Sent = true
		respondContact(w, r, data)
		return
	}

	data.Errors = validateContact(data)
	if len(data.Errors) > 0 {
		respondContact(w, r, data)
		return
	}

	sub := visits.Submission{
		ID:      uuid.NewString(),
		Name:    data.Name,
		Email:   data.Email,
		Message: data.Message,
	}
	if err := visitStore.RecordSubmission(r.Context(), sub); err != nil {
		log.Printf("contact: store submission: %v", err)
		// keep going; losing the audit row should not block delivery
	}

	err := mailClient.Send(r.Context(), mailer.Message{
		SubmissionID: sub.ID,
		Name:         data.Name,
		Email:        data.Email,
		Body:         data.Message,
	})
	if err != nil {
		log.Printf("contact: deliver %s: %v", sub.ID, err)
		if serr := visitStore.SetSubmissionStatus(r.Context(), sub.ID, "failed"); serr != nil {
			log.Printf("contact: mark failed: %v", serr)
		}
		data.Failure = "Sorry, there was a problem sending your message. Please try again later."
		respondContact(w, r, data)
		return
	}
	if serr := visitStore.SetSubmissionStatus(r.Context(), sub.ID, "sent"); serr != nil {
		log.Printf("contact: mark sent: %v", serr)
	}

	respondContact(w, r, &ContactData{Sent: true})
}

func respondContact(w http.ResponseWriter, r *http.Request, data *ContactData) {
	vm := buildPageData(r, "Contact")
	vm.View = "contact"
	vm.Contact = data
	if mw.IsHTMX(r.Context()) {
		switch {
		case data.Sent:
			renderFragment(w, r, "contact_success", vm)
		case data.Failure != "":
			renderFragment(w, r, "contact_error", vm)
		default:
			renderFragment(w, r, "contact_form", vm)
		}
		return
	}
	render(w, r, vm)
}

func validateContact(data *ContactData) map[string]string {
	errs := map[string]string{}
	if data.Name == "" {
		errs["name"] = "Please tell me your name."
	}
	if data.Email == "" {
		errs["email"] = "An email address is required so I can reply."
	} else if _, err := mail.ParseAddress(data.Email); err != nil {
		errs["email"] = "That email address doesn't look right."
	}
	if data.Message == "" {
		errs["message"] = "The message is empty."
	} else if len(data.Message) > maxMessageLen {
		errs["message"] = "The message is too long."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
