package curriculum

import "github.com/huangsam/elimu/schema"

// Band tables are ordered from the highest band to the lowest.

var bands844 = []schema.Band{
	{Label: "A", Min: 80, Max: 100, Points: 12, Remark: "Excellent"},
	{Label: "A-", Min: 75, Max: 79, Points: 11, Remark: "Very Good"},
	{Label: "B+", Min: 70, Max: 74, Points: 10, Remark: "Good"},
	{Label: "B", Min: 65, Max: 69, Points: 9, Remark: "Above Average"},
	{Label: "B-", Min: 60, Max: 64, Points: 8, Remark: "Average"},
	{Label: "C+", Min: 55, Max: 59, Points: 7, Remark: "Below Average"},
	{Label: "C", Min: 50, Max: 54, Points: 6, Remark: "Fair"},
	{Label: "C-", Min: 45, Max: 49, Points: 5, Remark: "Poor"},
	{Label: "D+", Min: 40, Max: 44, Points: 4, Remark: "Very Poor"},
	{Label: "D", Min: 35, Max: 39, Points: 3, Remark: "Weak"},
	{Label: "D-", Min: 30, Max: 34, Points: 2, Remark: "Very Weak"},
	{Label: "E", Min: 0, Max: 29, Points: 1, Remark: "Fail"},
}

var bandsCBC = []schema.Band{
	{Label: "Exceeding Expectations", Code: "EE", Min: 80, Max: 100, Points: 4, Color: "#10b981"},
	{Label: "Meeting Expectations", Code: "ME", Min: 60, Max: 79, Points: 3, Color: "#3b82f6"},
	{Label: "Approaching Expectations", Code: "AE", Min: 40, Max: 59, Points: 2, Color: "#f59e0b"},
	{Label: "Below Expectations", Code: "BE", Min: 0, Max: 39, Points: 1, Color: "#ef4444"},
}

var bandsGCSE = []schema.Band{
	{Label: "9", Min: 90, Max: 100, Points: 9, Remark: "High A*"},
	{Label: "8", Min: 80, Max: 89, Points: 8, Remark: "A*"},
	{Label: "7", Min: 70, Max: 79, Points: 7, Remark: "A"},
	{Label: "6", Min: 60, Max: 69, Points: 6, Remark: "B"},
	{Label: "5", Min: 50, Max: 59, Points: 5, Remark: "C"},
	{Label: "4", Min: 40, Max: 49, Points: 4, Remark: "Pass"},
	{Label: "3", Min: 30, Max: 39, Points: 3, Remark: "D"},
	{Label: "2", Min: 20, Max: 29, Points: 2, Remark: "E"},
	{Label: "1", Min: 10, Max: 19, Points: 1, Remark: "F"},
	{Label: "U", Min: 0, Max: 9, Points: 0, Remark: "Ungraded"},
}

// The U band closes the A-Level table below E.
var bandsALevel = []schema.Band{
	{Label: "A*", Min: 90, Max: 100, Points: 56, UCAS: 56},
	{Label: "A", Min: 80, Max: 89, Points: 48, UCAS: 48},
	{Label: "B", Min: 70, Max: 79, Points: 40, UCAS: 40},
	{Label: "C", Min: 60, Max: 69, Points: 32, UCAS: 32},
	{Label: "D", Min: 50, Max: 59, Points: 24, UCAS: 24},
	{Label: "E", Min: 40, Max: 49, Points: 16, UCAS: 16},
	{Label: "U", Min: 0, Max: 39, Points: 0, UCAS: 0, Remark: "Ungraded"},
}

var bandsNarrative = []schema.Band{
	{Label: "Working Above", Min: 90, Max: 100, Points: 4, Remark: "Greater Depth"},
	{Label: "Working At", Min: 70, Max: 89, Points: 3, Remark: "Expected"},
	{Label: "Working Towards", Min: 50, Max: 69, Points: 2, Remark: "Developing"},
	{Label: "Below Expected", Min: 0, Max: 49, Points: 1, Remark: "Emerging"},
}

var bandsGPA = []schema.Band{
	{Label: "A+", Min: 97, Max: 100, Points: 4.0, Weighted: 4.3, Remark: "Excellent"},
	{Label: "A", Min: 93, Max: 96, Points: 4.0, Weighted: 4.0, Remark: "Excellent"},
	{Label: "A-", Min: 90, Max: 92, Points: 3.7, Weighted: 3.7, Remark: "Excellent"},
	{Label: "B+", Min: 87, Max: 89, Points: 3.3, Weighted: 3.3, Remark: "Good"},
	{Label: "B", Min: 83, Max: 86, Points: 3.0, Weighted: 3.0, Remark: "Good"},
	{Label: "B-", Min: 80, Max: 82, Points: 2.7, Weighted: 2.7, Remark: "Good"},
	{Label: "C+", Min: 77, Max: 79, Points: 2.3, Weighted: 2.3, Remark: "Satisfactory"},
	{Label: "C", Min: 73, Max: 76, Points: 2.0, Weighted: 2.0, Remark: "Satisfactory"},
	{Label: "C-", Min: 70, Max: 72, Points: 1.7, Weighted: 1.7, Remark: "Satisfactory"},
	{Label: "D+", Min: 67, Max: 69, Points: 1.3, Weighted: 1.3, Remark: "Passing"},
	{Label: "D", Min: 65, Max: 66, Points: 1.0, Weighted: 1.0, Remark: "Passing"},
	{Label: "F", Min: 0, Max: 64, Points: 0.0, Weighted: 0.0, Remark: "Failing"},
}

var bandsAPExam = []schema.Band{
	{Label: "5", Min: 70, Max: 100, Points: 5, Remark: "Extremely well qualified"},
	{Label: "4", Min: 60, Max: 69, Points: 4, Remark: "Well qualified"},
	{Label: "3", Min: 50, Max: 59, Points: 3, Remark: "Qualified"},
	{Label: "2", Min: 40, Max: 49, Points: 2, Remark: "Possibly qualified"},
	{Label: "1", Min: 0, Max: 39, Points: 1, Remark: "No recommendation"},
}

// Standardized test ranges; Points holds the passing mark where one exists.
var bandsSAT = []schema.Band{
	{Label: "Math", Min: 200, Max: 800, Points: 530},
	{Label: "EBRW", Min: 200, Max: 800, Points: 480},
	{Label: "Total", Min: 400, Max: 1600},
}

var bandsACT = []schema.Band{
	{Label: "Composite", Min: 1, Max: 36, Points: 21},
	{Label: "English", Min: 1, Max: 36},
	{Label: "Math", Min: 1, Max: 36},
	{Label: "Reading", Min: 1, Max: 36},
	{Label: "Science", Min: 1, Max: 36},
}

var (
	competencies = []string{
		"Communication and Collaboration",
		"Critical Thinking and Problem Solving",
		"Creativity and Imagination",
		"Citizenship",
		"Digital Literacy",
		"Learning to Learn",
		"Self-efficacy",
	}
	coreValues   = []string{"Love", "Responsibility", "Respect", "Unity", "Peace", "Patriotism", "Integrity", "Social Justice"}
	valueRatings = []string{"Exemplary", "Accomplished", "Developing", "Emerging"}
	honorsTypes  = []string{"Honors", "AP", "IB", "Dual Enrollment"}
)

var (
	levels844      = []string{"Form 1", "Form 2", "Form 3", "Form 4"}
	levelsCBC      = []string{"PP1", "PP2", "Grade 1", "Grade 2", "Grade 3", "Grade 4", "Grade 5", "Grade 6", "Grade 7", "Grade 8", "Grade 9"}
	levelsBritish  = []string{"Year 1", "Year 2", "Year 3", "Year 4", "Year 5", "Year 6", "Year 7", "Year 8", "Year 9", "Year 10", "Year 11", "Year 12", "Year 13"}
	levelsAmerican = []string{"Kindergarten", "Grade 1", "Grade 2", "Grade 3", "Grade 4", "Grade 5", "Grade 6", "Grade 7", "Grade 8", "Grade 9", "Grade 10", "Grade 11", "Grade 12"}
)

var keyStages = map[string]string{
	"Year 1": "KS1", "Year 2": "KS1",
	"Year 3": "KS2", "Year 4": "KS2", "Year 5": "KS2", "Year 6": "KS2",
	"Year 7": "KS3", "Year 8": "KS3", "Year 9": "KS3",
	"Year 10": "KS4", "Year 11": "KS4",
	"Year 12": "KS5", "Year 13": "KS5",
}

var upperCBCLevels = map[string]struct{}{
	"Grade 4": {}, "Grade 5": {}, "Grade 6": {}, "Grade 7": {}, "Grade 8": {}, "Grade 9": {},
}
