package main

import (
	"net/http"

	"github.com/sushihentaime/currytech/internal/testimonialservice"
)

func (app *application) writeTestimonials(w http.ResponseWriter, r *http.Request, testimonials []testimonialservice.Testimonial, err error) {
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(testimonials), "data": testimonials}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listApprovedTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	testimonials, err := app.testimonialService.ListApproved(r.Context())
	app.writeTestimonials(w, r, testimonials, err)
}

func (app *application) listAllTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	testimonials, err := app.testimonialService.ListAll(r.Context())
	app.writeTestimonials(w, r, testimonials, err)
}

func (app *application) listMyTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	testimonials, err := app.testimonialService.ListMine(r.Context(), app.getUserContext(r))
	app.writeTestimonials(w, r, testimonials, err)
}

func (app *application) getTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	testimonial, err := app.testimonialService.GetTestimonial(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": testimonial}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	var input testimonialservice.CreateTestimonialRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	testimonial, err := app.testimonialService.CreateTestimonial(r.Context(), app.getUserContext(r), input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"success": true, "data": testimonial}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input testimonialservice.UpdateTestimonialRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	testimonial, err := app.testimonialService.UpdateTestimonial(r.Context(), app.getUserContext(r), id, input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": testimonial}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.testimonialService.DeleteTestimonial(r.Context(), app.getUserContext(r), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": envelope{}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) approveTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	testimonial, err := app.testimonialService.ApproveTestimonial(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": testimonial}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
