package cli

import "quiz-app/internal/app"

// seedQuestions is the bundled starter content. The answer sets keep the
// one-correct/three-plus-incorrect shape the question bank requires.
func seedQuestions() []app.QuestionImport {
	return []app.QuestionImport{
		{
			Text: "In welchem Land steht der Eiffelturm?", Category: "Geographie", Difficulty: "Leicht",
			Answers: answers("Frankreich", "Deutschland", "Italien", "Spanien", "England"),
		},
		{
			Text: "Welche ist die Hauptstadt von Deutschland?", Category: "Geographie", Difficulty: "Leicht",
			Answers: answers("Berlin", "München", "Hamburg", "Frankfurt", "Köln"),
		},
		{
			Text: "Auf welchem Kontinent liegt Ägypten?", Category: "Geographie", Difficulty: "Leicht",
			Answers: answers("Afrika", "Asien", "Europa", "Südamerika"),
		},
		{
			Text: "Welcher Ozean ist der größte?", Category: "Geographie", Difficulty: "Leicht",
			Answers: answers("Pazifik", "Atlantik", "Indischer Ozean", "Arktischer Ozean"),
		},
		{
			Text: "Welches ist das größte Land der Welt nach Fläche?", Category: "Geographie", Difficulty: "Mittel",
			Answers: answers("Russland", "Kanada", "China", "USA", "Brasilien"),
		},
		{
			Text: "Welche Stadt ist die Hauptstadt von Australien?", Category: "Geographie", Difficulty: "Mittel",
			Answers: answers("Canberra", "Sydney", "Melbourne", "Brisbane"),
		},
		{
			Text: "Welches ist das kleinste Land der Welt?", Category: "Geographie", Difficulty: "Schwer",
			Answers: answers("Vatikanstadt", "Monaco", "San Marino", "Liechtenstein"),
		},
		{
			Text: "In welchem Jahr fiel die Berliner Mauer?", Category: "Geschichte", Difficulty: "Leicht",
			Answers: answers("1989", "1990", "1988", "1991"),
		},
		{
			Text: "Wer war der erste Bundeskanzler Deutschlands?", Category: "Geschichte", Difficulty: "Leicht",
			Answers: answers("Konrad Adenauer", "Willy Brandt", "Helmut Kohl", "Ludwig Erhard"),
		},
		{
			Text: "Wer entdeckte Amerika im Jahr 1492?", Category: "Geschichte", Difficulty: "Leicht",
			Answers: answers("Christoph Kolumbus", "Amerigo Vespucci", "Ferdinand Magellan", "Vasco da Gama"),
		},
		{
			Text: "Wer war der erste Mensch auf dem Mond?", Category: "Geschichte", Difficulty: "Mittel",
			Answers: answers("Neil Armstrong", "Buzz Aldrin", "Juri Gagarin", "Michael Collins"),
		},
		{
			Text: "Wer war der letzte Kaiser des Deutschen Reiches?", Category: "Geschichte", Difficulty: "Schwer",
			Answers: answers("Wilhelm II", "Wilhelm I", "Friedrich III", "Otto von Bismarck"),
		},
		{
			Text: "Wie viele Planeten hat unser Sonnensystem?", Category: "Naturwissenschaften", Difficulty: "Leicht",
			Answers: answers("8", "9", "7", "10"),
		},
		{
			Text: "Welches Organ pumpt Blut durch den Körper?", Category: "Naturwissenschaften", Difficulty: "Leicht",
			Answers: answers("Herz", "Lunge", "Leber", "Niere"),
		},
		{
			Text: "Welcher Planet ist der größte in unserem Sonnensystem?", Category: "Naturwissenschaften", Difficulty: "Mittel",
			Answers: answers("Jupiter", "Saturn", "Neptun", "Uranus"),
		},
		{
			Text: "Welches Element hat das Symbol 'Au'?", Category: "Naturwissenschaften", Difficulty: "Mittel",
			Answers: answers("Gold", "Silber", "Aluminium", "Kupfer"),
		},
		{
			Text: "Wie viele Chromosomen hat der Mensch?", Category: "Naturwissenschaften", Difficulty: "Schwer",
			Answers: answers("46", "44", "48", "42"),
		},
		{
			Text: "Wie viele Spieler hat eine Fußballmannschaft auf dem Feld?", Category: "Sport", Difficulty: "Leicht",
			Answers: answers("11", "10", "12", "9"),
		},
		{
			Text: "Wie lang ist ein Marathon?", Category: "Sport", Difficulty: "Mittel",
			Answers: answers("42,195 km", "40 km", "45 km", "50 km"),
		},
		{
			Text: "In welchem Jahr fanden die ersten modernen Olympischen Spiele statt?", Category: "Sport", Difficulty: "Schwer",
			Answers: answers("1896", "1900", "1892", "1888"),
		},
		{
			Text: "Wer malte die Mona Lisa?", Category: "Kunst & Kultur", Difficulty: "Leicht",
			Answers: answers("Leonardo da Vinci", "Michelangelo", "Raffael", "Donatello"),
		},
		{
			Text: "Wer schrieb 'Romeo und Julia'?", Category: "Kunst & Kultur", Difficulty: "Mittel",
			Answers: answers("William Shakespeare", "Charles Dickens", "Oscar Wilde", "Jane Austen"),
		},
		{
			Text: "Wer komponierte 'Die vier Jahreszeiten'?", Category: "Kunst & Kultur", Difficulty: "Schwer",
			Answers: answers("Antonio Vivaldi", "Johann Sebastian Bach", "Georg Friedrich Händel", "Claudio Monteverdi"),
		},
		{
			Text: "Was bedeutet 'WWW' im Internet?", Category: "Technologie", Difficulty: "Leicht",
			Answers: answers("World Wide Web", "World Web Wide", "Wide World Web", "Web World Wide"),
		},
		{
			Text: "Wer gilt als Erfinder des World Wide Web?", Category: "Technologie", Difficulty: "Mittel",
			Answers: answers("Tim Berners-Lee", "Bill Gates", "Steve Jobs", "Mark Zuckerberg"),
		},
		{
			Text: "Wann wurde das erste iPhone vorgestellt?", Category: "Technologie", Difficulty: "Schwer",
			Answers: answers("2007", "2006", "2008", "2005"),
		},
	}
}

// answers marks the first option correct and the rest as distractors.
func answers(correct string, wrong ...string) []app.ImportAnswer {
	out := make([]app.ImportAnswer, 0, len(wrong)+1)
	out = append(out, app.ImportAnswer{Text: correct, Correct: true})
	for _, w := range wrong {
		out = append(out, app.ImportAnswer{Text: w})
	}
	return out
}
