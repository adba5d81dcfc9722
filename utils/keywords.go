package utils

// Keyword tables for classification. All entries are lowercase and matched by
// plain substring containment, which is intentionally not word-boundary-aware
// ("ear" matches inside "early"), a known risk kept for behavioural parity
// with the existing keyword configuration.
//
// Ordered tables are slices of (name, keywords) pairs: first-match priority
// and tie-breaking depend on declaration order, so these must never be
// converted to maps.

// KeywordCategory is one named keyword list inside an ordered table.
type KeywordCategory struct {
	Name     string
	Keywords []string
}

// ChatKeywords are greetings and pleasantries (English + Roman Urdu).
var ChatKeywords = []string{
	"hi", "hello", "hey", "salam", "assalam", "aoa",
	"kaise ho", "kya haal", "how are you", "good morning",
	"good evening", "good night", "subha bakhair", "shab bakhair",
	"theek ho", "kaisa chal raha", "what's up", "wassup",
	"thanks", "shukriya", "thank you", "jazakallah",
	"bye", "goodbye", "khuda hafiz", "allah hafiz",
}

// EmotionTable maps emotion categories to trigger words, first match wins.
var EmotionTable = []KeywordCategory{
	{"sad", []string{"sad", "udaas", "dil dukhi", "rona", "ro raha", "akela", "alone", "lonely"}},
	{"stressed", []string{"stressed", "tension", "pareshan", "takleef", "mushkil", "stress", "pressure", "overwhelmed"}},
	{"anxious", []string{"anxious", "ghabra", "darr", "fear", "anxiety", "panic", "bechain", "restless"}},
	{"tired", []string{"tired", "thaka", "thakawat", "exhausted", "neend", "so nahi", "weakness", "kamzor"}},
	{"angry", []string{"gussa", "angry", "anger", "frustrat", "irritat"}},
	{"worried", []string{"worried", "fikr", "chinta", "tension hai", "dar lag raha"}},
}

// DoctorRequestPhrases are explicit requests for a doctor or specialist.
var DoctorRequestPhrases = []string{
	// Urdu / Roman Urdu
	"doctor chahiye", "doctor batao", "doctor suggest", "doctor recommend",
	"doctor kon", "kaunsa doctor", "kaun sa doctor", "doctor dikhao",
	"mujhe doctor", "doctor ka number", "doctor ki zaroorat",
	"specialist chahiye", "specialist batao", "specialist suggest",
	"specialist recommend", "koi specialist", "koi doctor",
	"doctor kahan", "kahan jayein", "kahan dikhayein",
	"doctor bata", "doctor lena", "doctor milao",
	// English
	"suggest doctor", "suggest a doctor", "suggest specialist",
	"recommend doctor", "recommend a doctor", "recommend specialist",
	"which doctor", "which specialist", "find doctor", "find specialist",
	"need a doctor", "need doctor", "need specialist",
	"show doctor", "show specialist", "get doctor",
	"please suggest", "can you suggest", "can you recommend",
	"who should i see", "which hospital",
}

// DoctorTriggerWords turn a specialty mention into an implicit doctor
// request, e.g. "heart specialist" without any explicit request phrase.
var DoctorTriggerWords = []string{
	"specialist", "doctor", "physician", "expert",
	"daktar", "hakim", "suggest", "recommend", "chahiye", "batao",
}

// DefaultSpecialization is used when a doctor is requested but no specialty
// keyword matched.
const DefaultSpecialization = "general practitioner (gp)"

// SpecialistTable maps specialties to symptom and request keywords, first
// match wins in user mode.
var SpecialistTable = []KeywordCategory{
	{"cardiologist", []string{
		"heart", "dil", "chest pain", "seene mein dard", "blood pressure",
		"bp", "cardiac", "dil ki dhadkan", "heartbeat", "palpitation",
		"cardiologist", "heart specialist", "heart doctor",
		"heart problem", "dil ka doctor", "dil ka masla",
	}},
	{"gynecologist", []string{
		"gynecologist", "gynae", "pregnancy", "hamal", "periods", "menses",
		"mahwari", "ladies doctor", "delivery", "baby", "baccha plan",
		"female doctor", "aurat ka doctor",
	}},
	{"pediatrician", []string{
		"child", "bachay", "bacha", "kids doctor", "children",
		"child specialist", "pediatrician", "paeds", "bachon ka doctor",
		"baby doctor", "newborn",
	}},
	{"neurologist", []string{
		"neurologist", "neuro", "migraine", "brain", "dimagh",
		"seizure", "fits", "headache", "sir dard", "chakkar",
		"brain doctor", "dimagh ka doctor",
	}},
	{"dermatologist", []string{
		"skin", "jild", "rash", "eczema", "acne", "pimple",
		"dermatologist", "kharish", "khujli", "daag", "dhabbe",
		"skin doctor", "skin specialist",
	}},
	{"orthopedic", []string{
		"bone", "haddi", "joint", "joron", "knee", "ghutna",
		"back pain", "kamar dard", "orthopedic", "fracture", "sprain",
		"bone doctor", "haddi ka doctor", "joint pain",
	}},
	{"diabetologist", []string{
		"diabetes", "sugar", "diabetologist", "blood sugar", "insulin",
		"sugar ka mareez", "sugar level", "diabetes doctor",
	}},
	{"gastroenterologist", []string{
		"stomach", "pait", "gastro", "ulcer", "liver", "jigar",
		"acidity", "constipation", "qabz", "diarrhea", "dast",
		"vomiting", "ultai", "gas", "bloating", "pet ka doctor",
	}},
	{"ent specialist", []string{
		"ear", "kaan", "nose", "naak", "throat", "gala", "ent",
		"tonsil", "hearing", "sunai nahi", "zukam", "naak band",
		"ear doctor", "nose doctor", "throat doctor",
	}},
	{"psychiatrist", []string{
		"mental", "anxiety", "depression", "stress", "psychiatric",
		"psychiatrist", "neend nahi", "nind nahi ati", "mood",
		"psychological", "mental health", "mental doctor",
	}},
	{"urologist", []string{
		"kidney", "gurda", "urine", "peshab", "urologist", "bladder",
		"stone", "pathri", "kidney doctor",
	}},
	{"ophthalmologist", []string{
		"eye", "ankh", "vision", "sight", "specs", "glasses",
		"ophthalmologist", "nazar", "aankhain", "eye doctor",
	}},
	{"dentist", []string{
		"teeth", "daant", "gums", "maseray", "dentist", "tooth",
		"dant dard", "tooth pain", "teeth doctor",
	}},
	{DefaultSpecialization, []string{
		"fever", "bukhar", "flu", "cold", "zukam", "cough", "khansi",
		"general", "gp", "normal doctor", "family doctor",
	}},
}

// ClinicalSpecialtyTable is the doctor-mode variant; all keyword hits per
// specialty are counted and the highest count wins, so the lists lean on
// clinical terminology rather than patient phrasing.
var ClinicalSpecialtyTable = []KeywordCategory{
	{"cardiologist", []string{
		"chest pain", "heart attack", "cardiac", "palpitation", "angina",
		"myocardial", "ecg", "troponin", "arrhythmia", "heart failure",
		"hypertension", "blood pressure",
	}},
	{"neurologist", []string{
		"stiff neck", "photophobia", "meningitis", "seizure", "convulsion",
		"stroke", "paralysis", "facial droop", "migraine", "altered consciousness",
		"gcs", "neuro", "brain", "spinal",
	}},
	{"gastroenterologist", []string{
		"abdominal pain", "stomach pain", "vomiting blood", "haematemesis",
		"liver", "hepatitis", "jaundice", "ascites", "diarrhea",
		"gi bleed", "peptic ulcer", "pancreatitis", "appendicitis",
	}},
	{"pediatrician", []string{
		"child", "infant", "neonate", "baby", "pediatric", "newborn", "toddler",
	}},
	{"gynecologist", []string{
		"pregnant", "pregnancy", "obstetric", "gynae", "uterus", "ovarian",
		"menstrual", "ectopic", "preeclampsia", "eclampsia", "labour", "delivery",
	}},
	{"orthopedic", []string{
		"fracture", "bone", "joint", "dislocation", "sprain", "ligament",
		"tendon", "spine", "vertebra", "trauma",
	}},
	{"pulmonologist", []string{
		"pneumonia", "tuberculosis", "tb", "respiratory", "lung", "copd",
		"asthma", "pleural", "effusion", "bronchitis", "spo2", "dyspnea",
	}},
	{"urologist", []string{
		"kidney stone", "renal", "urinary", "urine", "bladder", "prostate",
		"uti", "creatinine high",
	}},
	{"psychiatrist", []string{
		"psychiatric", "psychosis", "schizophrenia", "bipolar", "suicidal",
		"hallucination", "delusion", "anxiety disorder",
	}},
	{"diabetologist", []string{
		"diabetes", "diabetic", "hyperglycemia", "hypoglycemia", "hba1c",
		"insulin", "blood sugar", "dka", "diabetic ketoacidosis",
	}},
	{"ophthalmologist", []string{
		"eye", "vision loss", "retinal", "glaucoma", "cataract", "conjunctivitis",
	}},
	{"dermatologist", []string{
		"skin rash", "dermatitis", "eczema", "psoriasis", "cellulitis", "abscess",
	}},
	{"ent specialist", []string{
		"ear", "nose", "throat", "ent", "tonsil", "sinusitis", "epistaxis",
		"hearing loss",
	}},
}

// EmergencyKeywords mark life-threatening situations that bypass everything
// else (English + Roman Urdu).
var EmergencyKeywords = []string{
	// Cardiac
	"chest pain", "heart attack", "cardiac arrest", "dil ka dora",
	"seene mein dard", "seene mein takleef", "left arm pain", "bayan baazu dard",
	"dil ki dhadkan ruk", "palpitation severe",
	// Breathing
	"can't breathe", "difficulty breathing", "saans nahi",
	"saans lene mein takleef", "not breathing", "choking", "gala band",
	"shortness of breath", "dyspnea",
	// Neurological
	"stroke", "laqwa", "unconscious", "behosh", "seizure", "fits",
	"mircgi", "sudden numbness", "face drooping", "aankhon ka andha hona",
	"sudden confusion", "severe headache", "zarb lagna dimagh",
	// Bleeding
	"severe bleeding", "zyada khoon", "blood vomiting", "khoon ulti",
	"khoon aa raha hai", "haemorrhage", "uncontrolled bleeding",
	// Other emergencies
	"overdose", "zahr", "poisoning", "suicide", "khud ko nuqsan",
	"fainted", "collapsed", "gir gaya", "unconscious pad gaya",
	"severe allergic", "anaphylaxis", "shock",
	// Trauma
	"accident", "hadsa", "head injury", "sir par chot", "broken bone severe",
	"drowning", "doobna", "burn severe", "jalana severe",
	// Pediatric emergencies
	"baby not breathing", "bachay ki saans nahi", "baby unresponsive",
	"bacha behosh",
}

// RestrictedOutputWords gate AI replies: dosages, brand names, definitive
// diagnoses and injection instructions must never be surfaced verbatim.
var RestrictedOutputWords = []string{
	// Specific dosages
	" mg ", "milligram", "ml of ", "cc of ",
	"take 1 tablet", "take 2 tablet", "take 500", "take 250",
	"twice a day", "thrice a day", "3 times a day", "per day dose",
	"dosage is", "dose of",
	// Brand names (Pakistan common brands)
	"panadol", "brufen", "flagyl", "augmentin", "disprin", "ponstan",
	"ciprofloxacin", "amoxicillin", "metronidazole", "ibuprofen",
	"paracetamol 500", "aspirin 75", "omeprazole 20",
	"calpol", "risek", "nexum", "losec", "amoxil",
	"clavam", "cefspan", "zithromax", "azithromycin 500",
	// Diagnosis confirmations
	"you have diabetes", "you have cancer", "you are suffering from",
	"diagnosis is confirmed", "aap ko yeh disease hai",
	"yeh cancer hai", "yeh tb hai", "you definitely have",
	// Injection/IV instructions
	"inject", "intravenous", "iv drip", "saline drip start",
}

// EmotionalDistressPhrases signal the user is down; SevereDistressPhrases
// (self-harm ideation) take precedence over them.
var EmotionalDistressPhrases = []string{
	"bohot dukhi", "very sad", "pareshan", "upset", "crying", "ro raha",
	"ro rahi", "depressed", "hopeless", "umeed nahi", "zindagi se thak",
	"jina nahi chahta", "jina nahi chahti", "give up on life",
	"koi nahi mera", "akela", "akeli", "abandoned", "worthless",
	"haar gaya", "haar gayi",
}

var SevereDistressPhrases = []string{
	"jina nahi chahta", "jina nahi chahti", "suicide", "khud ko nuqsan",
	"zindagi khatam", "mar jana chahta", "mar jana chahti",
}
