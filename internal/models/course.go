package models

// Course names the course a student is enrolled in. The form offers a fixed set of values, but
// records written by other clients may carry any string, which is kept as is.
type Course string

const (
	CourseUnset        Course = ""
	CourseBackEnd      Course = "Back-end"
	CourseFrontEnd     Course = "Front-end"
	CourseRedes        Course = "Redes"
	CourseBancoDeDados Course = "Banco de Dados"
	CourseUX           Course = "UX"
)

// CoursePlaceholder is the label shown for the unset course.
const CoursePlaceholder = "Selecione um curso"

var selectableCourses = []Course{
	CourseBackEnd,
	CourseFrontEnd,
	CourseRedes,
	CourseBancoDeDados,
	CourseUX,
}

// Courses returns the selectable courses in display order.
func Courses() []Course {
	out := make([]Course, len(selectableCourses))
	copy(out, selectableCourses)
	return out
}

// Known reports whether the course is unset or one of the selectable options.
func (c Course) Known() bool {
	if c == CourseUnset {
		return true
	}
	for _, course := range selectableCourses {
		if course == c {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Course) String() string {
	return string(c)
}

// Label is the text displayed for the course in the form.
func (c Course) Label() string {
	if c == CourseUnset {
		return CoursePlaceholder
	}
	return string(c)
}
