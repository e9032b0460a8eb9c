package types

// SampleResume returns the demo resume used to preview templates.
// A fresh value is returned on every call.
func SampleResume() *ResumeData {
	return &ResumeData{
		Name:     "Priya Sharma",
		Email:    "priya@gmail.com",
		Phone:    "+91 9876543210",
		Location: "Hyderabad, India",
		LinkedIn: "linkedin.com/in/priyasharma",
		GitHub:   "github.com/priyasharma",
		Summary: "Final year B.Tech CSE student with a strong foundation in Python, Machine Learning, and web development. " +
			"Built 3+ end-to-end ML projects and completed a data science internship at a tech startup. " +
			"Seeking a full-time SDE/Data Science role where I can apply my skills to solve real-world problems.",
		Education: []Education{
			{Degree: "B.Tech Computer Science", Institution: "JNTU Hyderabad", Year: "2020 – 2024", Grade: "8.5 / 10"},
			{Degree: "Class 12 (MPC)", Institution: "Narayana Junior College", Year: "2018 – 2020", Grade: "95.4%"},
		},
		Experience: []Experience{
			{
				Role:     "Data Science Intern",
				Company:  "TechStartup Pvt. Ltd.",
				Duration: "May – Aug 2023",
				Description: "• Built a customer churn prediction model using XGBoost with 89% accuracy, reducing churn by 12%\n" +
					"• Automated weekly reporting dashboards using Python and Tableau, saving 5 hours per week\n" +
					"• Collaborated with a team of 4 engineers in an Agile environment",
			},
		},
		Projects: ComposeProjects([]Project{
			{Name: "Fake News Detector", Tech: "Python, NLP, LSTM", Description: "Classified news articles as real/fake with 94% accuracy. Deployed as a Flask web app."},
			{Name: "Stock Price Predictor", Tech: "Python, LSTM, yfinance", Description: "Predicted next-day stock prices with RMSE of 2.3 for NIFTY 50."},
			{Name: "Personal Finance Tracker", Tech: "React, Firebase", Description: "Built a full-stack app to track expenses with visualizations."},
		}),
		Skills: ComposeSkills(SkillGroups{
			Languages:  "Python, Java, SQL, JavaScript",
			Frameworks: "TensorFlow, Scikit-learn, React, Flask",
			Tools:      "Git, Docker, Jupyter, VS Code, Tableau",
			SoftSkills: "Problem Solving, Team Collaboration, Communication",
		}),
		Achievements: "• Google Data Analytics Professional Certificate – Coursera (2023)\n" +
			"• Ranked Top 5% in HackerRank Python Assessment (Gold Badge)\n" +
			"• 1st Place – College Hackathon 2023 (50+ teams)",
		Extra: "• Technical Lead, College Coding Club (2022-23) — organized workshops for 200+ students\n" +
			"• NSS Volunteer — coordinated blood donation drives and awareness campaigns",
	}
}
