package patient

var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Christopher", "Charles", "Daniel", "Matthew",
		"Anthony", "Mark", "Steven", "Paul", "Andrew", "Joshua", "Kenneth",
		"Kevin", "Brian", "Timothy", "Ronald", "Edward", "Jason", "Ryan",
		"Jacob", "Nicholas", "Eric", "Jonathan", "Stephen", "Justin", "Scott",
		"Brandon", "Benjamin", "Samuel", "Gregory", "Frank", "Alexander",
		"Patrick", "Dennis", "Tyler",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Margaret",
		"Sandra", "Ashley", "Kimberly", "Emily", "Donna", "Michelle", "Carol",
		"Amanda", "Melissa", "Deborah", "Stephanie", "Rebecca", "Sharon",
		"Laura", "Cynthia", "Kathleen", "Amy", "Angela", "Anna", "Pamela",
		"Emma", "Nicole", "Samantha", "Katherine", "Christine", "Rachel",
		"Janet", "Catherine", "Maria", "Heather", "Diane",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson",
		"Martin", "Lee", "Perez", "Thompson", "White", "Harris", "Sanchez",
		"Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen",
		"King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
		"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell",
		"Mitchell", "Carter", "Roberts",
	}

	streets = []string{
		"123 Main St", "456 Oak Ave", "789 Elm St", "321 Pine Rd",
		"654 Maple Dr", "987 Cedar Ln", "147 Birch Blvd", "258 Walnut Way",
		"369 Cherry Ct", "741 Spruce Pl", "852 Willow Rd", "963 Ash St",
	}
	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	}
	states = []string{
		"NY", "CA", "IL", "TX", "AZ", "PA", "FL", "OH", "NC", "GA",
		"MI", "NJ", "VA", "WA", "CO",
	}
	zips = []string{
		"10001", "90001", "60601", "77001", "85001", "19101", "78201",
		"92101", "75201", "95101", "73301", "32201", "76101", "43201", "28201",
	}

	chronicConditions = []string{
		"Type 2 diabetes mellitus",
		"Essential hypertension",
		"Asthma",
		"Hyperlipidemia",
		"Hypothyroidism",
		"Gastro-esophageal reflux disease",
		"Chronic kidney disease, stage 2",
		"Coronary artery disease",
		"Osteoarthritis",
		"Major depressive disorder",
		"Chronic obstructive pulmonary disease",
		"Atrial fibrillation",
		"Migraine",
		"Irritable bowel syndrome",
	}

	medications = []string{
		"Metformin 500 MG Oral Tablet",
		"Lisinopril 10 MG Oral Tablet",
		"Atorvastatin 20 MG Oral Tablet",
		"Omeprazole 20 MG Delayed Release Oral Capsule",
		"Levothyroxine Sodium 0.05 MG Oral Tablet",
		"Amlodipine 5 MG Oral Tablet",
		"Hydrochlorothiazide 25 MG Oral Tablet",
		"Sertraline 50 MG Oral Tablet",
		"Albuterol 0.83 MG/ML Inhalation Solution",
		"Losartan Potassium 50 MG Oral Tablet",
		"Gabapentin 300 MG Oral Capsule",
		"Montelukast 10 MG Oral Tablet",
		"Furosemide 40 MG Oral Tablet",
		"Warfarin Sodium 5 MG Oral Tablet",
	}

	allergies = []string{
		"Penicillin",
		"Sulfonamides",
		"Aspirin",
		"Ibuprofen",
		"Latex",
		"Peanuts",
		"Shellfish",
		"Codeine",
		"Eggs",
		"Bee venom",
	}

	insuranceProviders = []string{
		"Aetna", "Blue Cross Blue Shield", "Cigna", "UnitedHealthcare",
		"Humana", "Kaiser Permanente", "Anthem", "Molina Healthcare",
	}

	relationships = []string{
		"spouse", "parent", "child", "sibling", "friend", "partner",
	}
)
