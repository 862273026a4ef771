package catalog

// Built-in fixtures standing in for the school database. Every accessor
// returns fresh copies so callers can never alter the seed data.

var (
	seedStudent = User{ID: "s1", Name: "Arjun", Role: RoleStudent, Grade: "Class 3", XP: 1250}
	seedTeacher = User{ID: "t1", Name: "Mrs. Lakshmi", Role: RoleTeacher, Email: "teacher@school.edu"}
	seedAdmin   = User{ID: "a1", Name: "Principal Rao", Role: RoleAdmin, Email: "admin@school.edu"}
)

// UserFor returns the fixture account for a role.
func UserFor(r Role) (User, bool) {
	switch r {
	case RoleStudent:
		return seedStudent, true
	case RoleTeacher:
		return seedTeacher, true
	case RoleAdmin:
		return seedAdmin, true
	default:
		return User{}, false
	}
}

// SeedBadges returns the built-in badges.
func SeedBadges() []Badge {
	return []Badge{
		{ID: "b1", Name: "Math Whiz", Icon: "🧮", Description: "Complete 5 Math lessons", Unlocked: true},
		{ID: "b2", Name: "Bookworm", Icon: "📚", Description: "Complete 3 English stories", Unlocked: true},
		{ID: "b3", Name: "Super Star", Icon: "⭐", Description: "Get 3 stars in a quiz", Unlocked: false},
		{ID: "b4", Name: "Early Bird", Icon: "🌅", Description: "Login before 8 AM", Unlocked: false},
	}
}

// SeedLessons returns the built-in lesson path in order.
func SeedLessons() []Lesson {
	return []Lesson{
		// UKG
		{ID: "ukg-m1", Title: "Counting 1-20", Subject: SubjectMath, Grade: "UKG", Description: "Let's count objects!", Completed: true, Stars: 3, Topics: []string{"Number Recognition", "Counting"}},
		{ID: "ukg-e1", Title: "Alphabet Fun", Subject: SubjectEnglish, Grade: "UKG", Description: "A for Apple, B for Ball", Completed: true, Stars: 2, Topics: []string{"Alphabet", "Phonics"}},
		{ID: "ukg-m2", Title: "Shapes & Sizes", Subject: SubjectMath, Grade: "UKG", Description: "Circle, Square, Big vs Small", Topics: []string{"Geometry", "Comparison"}},

		// Class 1
		{ID: "c1-m1", Title: "Numbers 1-100", Subject: SubjectMath, Grade: "Class 1", Description: "Counting forward and backward", Locked: true, Topics: []string{"Numbers", "Counting"}},
		{ID: "c1-m2", Title: "Simple Addition", Subject: SubjectMath, Grade: "Class 1", Description: "Adding single digit numbers", Locked: true, Topics: []string{"Addition"}},
		{ID: "c1-e1", Title: "Short Sentences", Subject: SubjectEnglish, Grade: "Class 1", Description: `Reading "The cat sat on the mat"`, Locked: true, Topics: []string{"Reading", "Grammar"}},

		// Class 2
		{ID: "c2-m1", Title: "Place Value", Subject: SubjectMath, Grade: "Class 2", Description: "Ones, Tens and Hundreds", Locked: true, Topics: []string{"Place Value"}},
		{ID: "c2-m2", Title: "Subtraction w/ Borrow", Subject: SubjectMath, Grade: "Class 2", Description: "2-digit subtraction tricky ones!", Locked: true, Topics: []string{"Subtraction"}},

		// Class 3
		{ID: "c3-m1", Title: "Multiplication Tables", Subject: SubjectMath, Grade: "Class 3", Description: "Tables 1 to 10", Locked: true, Topics: []string{"Multiplication"}},
		{ID: "c3-m2", Title: "Measurement", Subject: SubjectMath, Grade: "Class 3", Description: "Length, Weight and Capacity", Locked: true, Topics: []string{"Measurement"}},
		{ID: "c3-e1", Title: "Parts of Speech", Subject: SubjectEnglish, Grade: "Class 3", Description: "Nouns, Verbs and Adjectives", Locked: true, Topics: []string{"Grammar"}},

		// Class 4
		{ID: "c4-m1", Title: "Fractions", Subject: SubjectMath, Grade: "Class 4", Description: "Understanding 1/2, 1/4 and more", Locked: true, Topics: []string{"Fractions"}},
		{ID: "c4-e1", Title: "Tenses", Subject: SubjectEnglish, Grade: "Class 4", Description: "Past, Present and Future", Locked: true, Topics: []string{"Grammar"}},

		// Class 5
		{ID: "c5-m1", Title: "Large Numbers", Subject: SubjectMath, Grade: "Class 5", Description: "Lakhs and Crores", Locked: true, Topics: []string{"Numbers"}},
		{ID: "c5-m2", Title: "Decimals", Subject: SubjectMath, Grade: "Class 5", Description: "Operations with decimal points", Locked: true, Topics: []string{"Decimals"}},
		{ID: "c5-e1", Title: "Essay Writing", Subject: SubjectEnglish, Grade: "Class 5", Description: "Writing 100-150 words", Locked: true, Topics: []string{"Writing"}},

		// Tamil
		{ID: "t-1", Title: "Uyir Ezhuthukal", Subject: SubjectTamil, Grade: "Class 1", Description: "Tamil Vowels", Locked: true, Topics: []string{"Alphabet"}},
		{ID: "t-2", Title: "Simple Words", Subject: SubjectTamil, Grade: "Class 2", Description: "Reading basic words", Locked: true, Topics: []string{"Reading"}},

		// Hindi
		{ID: "h-1", Title: "Swar (Vowels)", Subject: SubjectHindi, Grade: "Class 1", Description: "Hindi Vowels (A, Aa, I, Ee)", Locked: true, Topics: []string{"Alphabet"}},
		{ID: "h-2", Title: "Vyanjan", Subject: SubjectHindi, Grade: "Class 2", Description: "Hindi Consonants", Locked: true, Topics: []string{"Alphabet"}},
	}
}

// SeedPath returns the built-in lesson path. The seed data is validated by
// tests, so a failure here is a programming error.
func SeedPath() *Path {
	p, err := NewPath(SeedLessons())
	if err != nil {
		panic(err)
	}
	return p
}

// SeedClassAnalytics returns the built-in class performance table.
func SeedClassAnalytics() []StudentProgress {
	return []StudentProgress{
		{StudentID: "s1", StudentName: "Arjun", MathScore: 85, EnglishScore: 72, TamilScore: 90, HindiScore: 75, Attendance: 95, WeakTopics: []string{"Grammar"}, RecentActivity: []int{70, 75, 80, 85, 82, 88, 90}},
		{StudentID: "s2", StudentName: "Priya", MathScore: 65, EnglishScore: 88, TamilScore: 92, HindiScore: 85, Attendance: 98, WeakTopics: []string{"Subtraction"}, RecentActivity: []int{60, 62, 65, 68, 70, 72, 65}},
		{StudentID: "s3", StudentName: "Rahul", MathScore: 45, EnglishScore: 60, TamilScore: 70, HindiScore: 50, Attendance: 85, WeakTopics: []string{"Multiplication", "Spelling"}, RecentActivity: []int{40, 42, 45, 40, 48, 50, 45}},
		{StudentID: "s4", StudentName: "Sneha", MathScore: 95, EnglishScore: 94, TamilScore: 98, HindiScore: 90, Attendance: 100, WeakTopics: []string{}, RecentActivity: []int{90, 92, 95, 94, 96, 98, 95}},
		{StudentID: "s5", StudentName: "Vikram", MathScore: 55, EnglishScore: 50, TamilScore: 65, HindiScore: 60, Attendance: 80, WeakTopics: []string{"Reading", "Addition"}, RecentActivity: []int{50, 55, 52, 58, 55, 60, 55}},
		{StudentID: "s6", StudentName: "Ananya", MathScore: 78, EnglishScore: 82, TamilScore: 85, HindiScore: 80, Attendance: 92, WeakTopics: []string{}, RecentActivity: []int{75, 78, 80, 82, 85, 84, 78}},
		{StudentID: "s7", StudentName: "Karthik", MathScore: 30, EnglishScore: 40, TamilScore: 60, HindiScore: 35, Attendance: 70, WeakTopics: []string{"Everything"}, RecentActivity: []int{30, 32, 35, 30, 28, 30, 30}},
		{StudentID: "s8", StudentName: "Meera", MathScore: 88, EnglishScore: 90, TamilScore: 85, HindiScore: 82, Attendance: 96, WeakTopics: []string{}, RecentActivity: []int{85, 88, 90, 88, 92, 90, 88}},
	}
}
