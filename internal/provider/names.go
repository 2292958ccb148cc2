package provider

type nameLists struct {
	male   []string
	female []string
	last   []string
}

func namesFor(locale string) nameLists {
	if locale == "en_US" {
		return nameLists{male: usMale, female: usFemale}
	}
	return nameLists{male: gbMale, female: gbFemale, last: gbLast}
}

var gbMale = []string{
	"Oliver", "George", "Harry", "Jack", "Jacob", "Noah", "Charlie", "Muhammad",
	"Thomas", "Oscar", "William", "James", "Henry", "Leo", "Alfie", "Joshua",
	"Freddie", "Archie", "Ethan", "Isaac", "Alexander", "Joseph", "Edward", "Samuel",
	"Max", "Daniel", "Arthur", "Lucas", "Mohammed", "Logan", "Theo", "Harrison",
	"Benjamin", "Mason", "Sebastian", "Finley", "Adam", "Dylan", "Zachary", "Riley",
	"David", "Michael", "Paul", "Andrew", "Mark", "Richard", "Stephen", "Peter",
	"Christopher", "Robert", "John", "Ian", "Gary", "Kevin", "Graham", "Neil",
}

var gbFemale = []string{
	"Olivia", "Amelia", "Isla", "Ava", "Emily", "Isabella", "Mia", "Poppy",
	"Ella", "Lily", "Sophia", "Grace", "Evie", "Scarlett", "Ruby", "Chloe",
	"Isabelle", "Daisy", "Freya", "Phoebe", "Florence", "Alice", "Jessica", "Sienna",
	"Charlotte", "Matilda", "Evelyn", "Eva", "Millie", "Sofia", "Lucy", "Elsie",
	"Imogen", "Layla", "Rosie", "Maya", "Esme", "Elizabeth", "Lola", "Willow",
	"Susan", "Margaret", "Sarah", "Karen", "Helen", "Julie", "Claire", "Emma",
	"Joanne", "Nicola", "Rachel", "Amanda", "Deborah", "Patricia", "Jean", "Janet",
}

var gbLast = []string{
	"Smith", "Jones", "Williams", "Taylor", "Brown", "Davies", "Evans", "Wilson",
	"Thomas", "Johnson", "Roberts", "Robinson", "Thompson", "Wright", "Walker", "White",
	"Edwards", "Hughes", "Green", "Hall", "Lewis", "Harris", "Clarke", "Patel",
	"Jackson", "Wood", "Turner", "Martin", "Cooper", "Hill", "Ward", "Morris",
	"Moore", "Clark", "Lee", "King", "Baker", "Harrison", "Morgan", "Allen",
	"James", "Scott", "Phillips", "Watson", "Davis", "Parker", "Price", "Bennett",
	"Young", "Griffiths", "Mitchell", "Kelly", "Cook", "Carter", "Richardson", "Bailey",
}

var usMale = []string{
	"James", "Robert", "John", "Michael", "David", "William", "Richard", "Joseph",
	"Thomas", "Christopher", "Charles", "Daniel", "Matthew", "Anthony", "Mark", "Donald",
	"Steven", "Andrew", "Paul", "Joshua", "Kenneth", "Kevin", "Brian", "George",
	"Timothy", "Ronald", "Jason", "Edward", "Jeffrey", "Ryan", "Jacob", "Gary",
}

var usFemale = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan", "Jessica",
	"Sarah", "Karen", "Lisa", "Nancy", "Betty", "Sandra", "Margaret", "Ashley",
	"Kimberly", "Emily", "Donna", "Michelle", "Carol", "Amanda", "Melissa", "Deborah",
	"Stephanie", "Dorothy", "Rebecca", "Sharon", "Laura", "Cynthia", "Amy", "Kathleen",
}
