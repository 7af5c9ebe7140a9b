package species

// defaultRegions is the built-in dataset: five biomes, ten native
// species each, in curated order. Deployments can replace it via
// SPECIES_CONFIG_PATH.
var defaultRegions = []Region{
	{
		Name: "Tropical Rainforest",
		Species: []string{
			"Milicia excelsa",
			"Khaya anthotheca",
			"Terminalia superba",
			"Albizia ferruginea",
			"Nauclea diderrichii",
			"Entandrophragma cylindricum",
			"Afzelia africana",
			"Ceiba pentandra",
			"Triplochiton scleroxylon",
			"Piptadeniastrum africanum",
		},
	},
	{
		Name: "Savanna",
		Species: []string{
			"Acacia senegal",
			"Balanites aegyptiaca",
			"Combretum molle",
			"Terminalia avicennioides",
			"Anogeissus leiocarpa",
			"Faidherbia albida",
			"Adansonia digitata",
			"Prosopis africana",
			"Daniellia oliveri",
			"Vitellaria paradoxa",
		},
	},
	{
		Name: "Coastal Forest",
		Species: []string{
			"Rhizophora mucronata",
			"Avicennia marina",
			"Ceriops tagal",
			"Barringtonia racemosa",
			"Heritiera littoralis",
			"Pandanus tectorius",
			"Bruguiera gymnorrhiza",
			"Thespesia populnea",
			"Hibiscus tiliaceus",
			"Casuarina equisetifolia",
		},
	},
	{
		Name: "Dry Woodland",
		Species: []string{
			"Combretum collinum",
			"Julbernardia globiflora",
			"Pterocarpus angolensis",
			"Brachystegia spiciformis",
			"Albizia harveyi",
			"Terminalia sericea",
			"Xeroderris stuhlmannii",
			"Afzelia quanzensis",
			"Acacia tortilis",
			"Dichrostachys cinerea",
		},
	},
	{
		Name: "Highland Forest",
		Species: []string{
			"Podocarpus falcatus",
			"Juniperus procera",
			"Hagenia abyssinica",
			"Olea europaea subsp. cuspidata",
			"Croton macrostachyus",
			"Polyscias fulva",
			"Prunus africana",
			"Schefflera abyssinica",
			"Cassipourea malosana",
			"Ilex mitis",
		},
	},
}
