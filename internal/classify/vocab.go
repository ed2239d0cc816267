package classify

// Vocabulary sets for dialect detection. Membership is checked against
// lowercase words with punctuation stripped; weights are the word's
// frequency in the document.

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// USEnglish holds spellings and lexical choices characteristic of US English.
var USEnglish = makeSet(
	"analyze", "apologize", "armor", "behavior", "catalog", "canceled", "center", "check", "color", "colorful",
	"counselor", "defense", "enroll", "enrollment", "favorite", "favor", "fiber", "fulfill", "fulfillment", "gray",
	"honor", "humor", "idolize", "instill", "jewelry", "judgment", "labor", "license", "liter", "maneuver", "maximize",
	"memorize", "meter", "modeling", "modeled", "modeler", "mold", "organize", "organization", "parlor", "practice", "program",
	"realize", "recognize", "rumor", "skeptic", "specialty", "theater", "traveling", "traveled", "vigor", "visualize",
	"yogurt", "curb", "neighbor", "paralyze", "offense", "pretense", "ton", "donut", "plow", "smolder", "tire", "likable",
	"labeled", "willful", "aluminum", "aging", "flavor", "endeavor", "sulfur", "distill", "mom", "anemia", "feces", "candor",
	"rigor", "vapor", "counseling", "authorize", "capitalize", "characterize", "criticize", "emphasize", "generalize",
	"equalize", "minimize", "mobilize", "optimize", "summarize", "licorice", "siphon", "pants", "cilantro", "eggplant",
	"scallion", "broil", "plexiglass", "dumpster", "scepter",
)

// UKEnglish holds the UK counterparts.
var UKEnglish = makeSet(
	"analyse", "apologise", "armour", "behaviour", "catalogue", "cancelling", "cancelled", "centre", "cheque",
	"colour", "colourful", "counsellor", "defence", "enrol", "enrolment", "favourite", "favour", "fibre", "fulfil",
	"fulfilment", "grey", "honour", "humour", "idolise", "instil", "jewellery", "judgement", "labour", "licence", "litre",
	"manoeuvre", "maximise", "memorise", "metre", "modelling", "modelled", "modeller", "mould", "organise", "organisation",
	"parlour", "practise", "programme", "realise", "recognise", "rumour", "sceptic", "speciality", "theatre", "travelling",
	"travelled", "vigour", "visualise", "yoghurt", "kerb", "neighbour", "paralyse", "offence", "pretence", "tonne",
	"plough", "smoulder", "tyre", "likeable", "labelled", "wilful", "learnt", "aluminium", "whilst", "ageing", "flavour",
	"endeavour", "sulphur", "distil", "arse", "maths", "mum", "anaemia", "faeces", "candour", "rigour", "vapour",
	"counselling", "authorise", "capitalise", "characterise", "criticise", "emphasise", "generalise", "equalise", "minimise",
	"mobilise", "optimise", "summarise", "liquorice", "syphon", "nappy", "trousers", "quid", "tosser", "knackered", "courgette",
	"aubergine", "perspex", "sceptre",
)

// CastilianSpanish holds vocabulary characteristic of European Spanish.
var CastilianSpanish = makeSet(
	"vosotros", "vale", "móvil", "ordenador", "gilipollas", "zumo", "patata", "conducir", "sobremesa", "grifo",
	"tiovivo", "coche", "camarero", "venga", "genial", "maíz", "aparcamiento", "marido", "tarta", "piso", "pendiente",
	"ascensor", "cazadora", "coste", "enfadado", "quedar", "quedado", "judía", "judías", "césped", "vídeo", "fregona",
	"bragas", "fichero", "apetecer", "majo", "miedica", "repelús", "escaqueado", "chachi", "niñato", "chapuza", "vuestra",
	"vuestro", "hacedlo", "mirad", "concentraos", "mola", "flipado", "guay", "capullo", "puñeta",
)

// LatinAmericanSpanish holds vocabulary characteristic of Latin-American Spanish.
var LatinAmericanSpanish = makeSet(
	"carro", "mesero", "mozo", "dale", "celular", "elote", "frijol", "frijoles", "troca", "estacionamiento", "parqueo", "rentarse",
	"lentes", "esposa", "esposo", "departamento", "arete", "aretes", "elevador", "básquetbol", "chamarra", "costo", "boludo",
	"enojado", "refrigerador", "poroto", "anteojos", "jugo", "subte", "computador", "computadora", "pileta", "video",
	"canilla", "trapeador", "archivo", "antojar",
)
