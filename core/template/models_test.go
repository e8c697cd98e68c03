package template

import "testing"

func TestCategoryForName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Send Course Assignment Email", want: CategoryCourseAssignment},
		{name: "send course invite", want: CategoryCourseAssignment},
		{name: "Course Completion Congratulations", want: CategoryCourseCompletion},
		{name: "Weekly Course Reminder", want: CategoryCourseReminder},
		{name: "Quiz Failure Follow-up", want: CategoryCourseQuizFailure},
		{name: "Manager Reminder Digest", want: CategoryManagerReminder},
		{name: "Quarterly Certification Notice", want: CategoryCourseCertification},
		{name: "Random Update", want: CategoryCustom},
		{name: "", want: CategoryCustom},
		// first match wins over later rules
		{name: "Course Assignment Certification", want: CategoryCourseAssignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryForName(tt.name); got != tt.want {
				t.Errorf("CategoryForName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
