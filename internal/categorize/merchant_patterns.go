package categorize

// DefaultMerchantPatterns returns the built-in merchant pattern table,
// grouped by spending domain. Order matters: the first matching entry wins.
func DefaultMerchantPatterns() []MerchantPattern {
	return []MerchantPattern{
		// Groceries
		{Name: "Whole Foods", CategoryID: "groceries", Regex: `\bWHOLE\s*FOODS\b`, Confidence: 0.95},
		{Name: "Trader Joe's", CategoryID: "groceries", Regex: `\bTRADER\s*JOE`, Confidence: 0.95},
		{Name: "Safeway", CategoryID: "groceries", Regex: `\bSAFEWAY\b`, Confidence: 0.95},
		{Name: "Kroger", CategoryID: "groceries", Regex: `\bKROGER\b`, Confidence: 0.95},
		{Name: "Aldi", CategoryID: "groceries", Regex: `\bALDI\b`, Confidence: 0.95},
		{Name: "Lidl", CategoryID: "groceries", Regex: `\bLIDL\b`, Confidence: 0.95},
		{Name: "Tesco", CategoryID: "groceries", Regex: `\bTESCO\b`, Confidence: 0.95},
		{Name: "Sainsbury's", CategoryID: "groceries", Regex: `\bSAINSBURY`, Confidence: 0.95},
		{Name: "Waitrose", CategoryID: "groceries", Regex: `\bWAITROSE\b`, Confidence: 0.95},
		{Name: "Costco", CategoryID: "groceries", Regex: `\bCOSTCO\b`, Confidence: 0.9},
		{Name: "Pyaterochka", CategoryID: "groceries", Regex: `ПЯТ[ЕЁ]РОЧКА`, Confidence: 0.95},
		{Name: "Magnit", CategoryID: "groceries", Regex: `(^|\s)МАГНИТ(\s|$)`, Confidence: 0.9},
		{Name: "Perekrestok", CategoryID: "groceries", Regex: `ПЕРЕКР[ЕЁ]СТОК`, Confidence: 0.95},
		{Name: "Vkusvill", CategoryID: "groceries", Regex: `ВКУСВИЛЛ|\bVKUSVILL\b`, Confidence: 0.95},
		{Name: "Magnum", CategoryID: "groceries", Regex: `\bMAGNUM\b|МАГНУМ`, Confidence: 0.9},
		{Name: "Small Kazakhstan", CategoryID: "groceries", Regex: `\bSMALL\s*(MARKET|SUPERMARKET)\b`, Confidence: 0.85},
		{Name: "Generic supermarket", CategoryID: "groceries", Regex: `\b(SUPERMARKET|GROCERY)\b|СУПЕРМАРКЕТ|ПРОДУКТЫ`, Confidence: 0.85},

		// Food delivery
		{Name: "Uber Eats", CategoryID: "food-delivery", Regex: `\bUBER\s*EATS\b`, Confidence: 0.95},
		{Name: "DoorDash", CategoryID: "food-delivery", Regex: `\bDOORDASH\b`, Confidence: 0.95},
		{Name: "Grubhub", CategoryID: "food-delivery", Regex: `\bGRUBHUB\b`, Confidence: 0.95},
		{Name: "Deliveroo", CategoryID: "food-delivery", Regex: `\bDELIVEROO\b`, Confidence: 0.95},
		{Name: "Just Eat", CategoryID: "food-delivery", Regex: `\bJUST\s*EAT\b`, Confidence: 0.95},
		{Name: "Yandex Eda", CategoryID: "food-delivery", Regex: `(YANDEX|ЯНДЕКС)\s*(EDA|ЕДА)`, Confidence: 0.95},
		{Name: "Delivery Club", CategoryID: "food-delivery", Regex: `\bDELIVERY\s*CLUB\b`, Confidence: 0.95},
		{Name: "Wolt", CategoryID: "food-delivery", Regex: `\bWOLT\b`, Confidence: 0.95},
		{Name: "Glovo", CategoryID: "food-delivery", Regex: `\bGLOVO\b`, Confidence: 0.95},

		// Restaurants and cafes
		{Name: "Starbucks", CategoryID: "restaurants", Regex: `\bSTARBUCKS\b`, Confidence: 0.95},
		{Name: "McDonald's", CategoryID: "restaurants", Regex: `\bMCDONALD`, Confidence: 0.95},
		{Name: "KFC", CategoryID: "restaurants", Regex: `\bKFC\b`, Confidence: 0.95},
		{Name: "Burger King", CategoryID: "restaurants", Regex: `\bBURGER\s*KING\b`, Confidence: 0.95},
		{Name: "Subway", CategoryID: "restaurants", Regex: `\bSUBWAY\b`, Confidence: 0.9},
		{Name: "Chipotle", CategoryID: "restaurants", Regex: `\bCHIPOTLE\b`, Confidence: 0.95},
		{Name: "Domino's", CategoryID: "restaurants", Regex: `\bDOMINO`, Confidence: 0.95},
		{Name: "Pizza Hut", CategoryID: "restaurants", Regex: `\bPIZZA\s*HUT\b`, Confidence: 0.95},
		{Name: "Costa Coffee", CategoryID: "restaurants", Regex: `\bCOSTA\s*COFFEE\b`, Confidence: 0.95},
		{Name: "Pret A Manger", CategoryID: "restaurants", Regex: `\bPRET\s*A\s*MANGER\b`, Confidence: 0.95},
		{Name: "Generic cafe", CategoryID: "restaurants", Regex: `\b(CAFE|COFFEE|RESTAURANT)\b|(^|\s)(КАФЕ|РЕСТОРАН|КОФЕЙНЯ)(\s|$)`, Confidence: 0.85},

		// Transport
		{Name: "Uber", CategoryID: "transport", Regex: `\bUBER\b`, Confidence: 0.9},
		{Name: "Lyft", CategoryID: "transport", Regex: `\bLYFT\b`, Confidence: 0.95},
		{Name: "Yandex Taxi", CategoryID: "transport", Regex: `(YANDEX|ЯНДЕКС)\s*(TAXI|ТАКСИ|GO)`, Confidence: 0.95},
		{Name: "Bolt", CategoryID: "transport", Regex: `\bBOLT\b`, Confidence: 0.85},
		{Name: "Transport for London", CategoryID: "transport", Regex: `\bTFL\b|TRANSPORT\s*FOR\s*LONDON`, Confidence: 0.95},
		{Name: "National Rail", CategoryID: "transport", Regex: `\b(TRAINLINE|NATIONAL\s*RAIL|GWR|LNER)\b`, Confidence: 0.9},
		{Name: "Metro fare", CategoryID: "transport", Regex: `\bMETRO\b|МЕТРО`, Confidence: 0.85},
		{Name: "Shell", CategoryID: "transport", Regex: `\bSHELL\b`, Confidence: 0.9},
		{Name: "BP", CategoryID: "transport", Regex: `\bBP\s*(GAS|FUEL|STATION|OIL)?\b`, Confidence: 0.85},
		{Name: "Chevron", CategoryID: "transport", Regex: `\bCHEVRON\b`, Confidence: 0.9},
		{Name: "Esso", CategoryID: "transport", Regex: `\bESSO\b`, Confidence: 0.9},
		{Name: "Gazprom Neft", CategoryID: "transport", Regex: `ГАЗПРОМНЕФТЬ|\bGAZPROMNEFT\b`, Confidence: 0.95},
		{Name: "Lukoil", CategoryID: "transport", Regex: `\bLUKOIL\b|ЛУКОЙЛ`, Confidence: 0.95},
		{Name: "Parking", CategoryID: "transport", Regex: `\bPARKING\b|ПАРКОВКА`, Confidence: 0.85},
		{Name: "Car sharing", CategoryID: "transport", Regex: `\b(ZIPCAR|CITYDRIVE)\b|ДЕЛИМОБИЛЬ`, Confidence: 0.95},

		// Utilities and telecom
		{Name: "Electric utility", CategoryID: "utilities", Regex: `\b(ELECTRIC|ENERGY|POWER\s*CO)\b|ЭНЕРГОСБЫТ`, Confidence: 0.85},
		{Name: "Water utility", CategoryID: "utilities", Regex: `\bWATER\s*(BILL|UTILITY|BOARD)\b|ВОДОКАНАЛ`, Confidence: 0.85},
		{Name: "Gas utility", CategoryID: "utilities", Regex: `\bGAS\s*(BILL|UTILITY)\b|ГОРГАЗ`, Confidence: 0.85},
		{Name: "British Gas", CategoryID: "utilities", Regex: `\bBRITISH\s*GAS\b`, Confidence: 0.95},
		{Name: "Comcast", CategoryID: "utilities", Regex: `\b(COMCAST|XFINITY)\b`, Confidence: 0.95},
		{Name: "AT&T", CategoryID: "utilities", Regex: `\bAT\s*&?\s*T\b`, Confidence: 0.9},
		{Name: "Verizon", CategoryID: "utilities", Regex: `\bVERIZON\b`, Confidence: 0.95},
		{Name: "T-Mobile", CategoryID: "utilities", Regex: `\bT\s*-?\s*MOBILE\b`, Confidence: 0.95},
		{Name: "Vodafone", CategoryID: "utilities", Regex: `\bVODAFONE\b`, Confidence: 0.95},
		{Name: "MTS", CategoryID: "utilities", Regex: `\bMTS\b|(^|\s)МТС(\s|$)`, Confidence: 0.9},
		{Name: "Beeline", CategoryID: "utilities", Regex: `\bBEELINE\b|БИЛАЙН`, Confidence: 0.95},
		{Name: "Megafon", CategoryID: "utilities", Regex: `\bMEGAFON\b|МЕГАФОН`, Confidence: 0.95},
		{Name: "Kcell", CategoryID: "utilities", Regex: `\bKCELL\b|\bACTIV\b`, Confidence: 0.9},

		// Entertainment and subscriptions
		{Name: "Netflix", CategoryID: "entertainment", Regex: `\bNETFLIX\b`, Confidence: 0.95},
		{Name: "Spotify", CategoryID: "entertainment", Regex: `\bSPOTIFY\b`, Confidence: 0.95},
		{Name: "YouTube Premium", CategoryID: "entertainment", Regex: `\bYOUTUBE\s*(PREMIUM|MUSIC)?\b`, Confidence: 0.9},
		{Name: "Disney Plus", CategoryID: "entertainment", Regex: `\bDISNEY\b`, Confidence: 0.9},
		{Name: "HBO Max", CategoryID: "entertainment", Regex: `\bHBO\s*(MAX)?\b`, Confidence: 0.9},
		{Name: "Apple Services", CategoryID: "entertainment", Regex: `\bAPPLE\s*(COM\s*BILL|SERVICES|MUSIC|TV)\b`, Confidence: 0.9},
		{Name: "Steam", CategoryID: "entertainment", Regex: `\bSTEAM\s*(GAMES|PURCHASE)?\b`, Confidence: 0.9},
		{Name: "PlayStation", CategoryID: "entertainment", Regex: `\bPLAYSTATION\b|\bSONY\s*ENTERTAINMENT\b`, Confidence: 0.95},
		{Name: "Xbox", CategoryID: "entertainment", Regex: `\bXBOX\b|\bMICROSOFT\s*ULTIMATE\b`, Confidence: 0.9},
		{Name: "Kinopoisk", CategoryID: "entertainment", Regex: `\bKINOPOISK\b|КИНОПОИСК`, Confidence: 0.95},
		{Name: "Ivi", CategoryID: "entertainment", Regex: `\bIVI\s*\.?RU\b`, Confidence: 0.95},
		{Name: "Cinema", CategoryID: "entertainment", Regex: `\b(CINEMA|ODEON|CINEWORLD)\b|КИНОТЕАТР`, Confidence: 0.9},
		{Name: "Twitch", CategoryID: "entertainment", Regex: `\bTWITCH\b`, Confidence: 0.95},

		// Shopping
		{Name: "Amazon", CategoryID: "shopping", Regex: `\bAMAZON\b|\bAMZN\b`, Confidence: 0.9},
		{Name: "eBay", CategoryID: "shopping", Regex: `\bEBAY\b`, Confidence: 0.95},
		{Name: "Walmart", CategoryID: "shopping", Regex: `\bWAL\s*-?\s*MART\b|\bWALMART\b`, Confidence: 0.9},
		{Name: "Target", CategoryID: "shopping", Regex: `\bTARGET\b`, Confidence: 0.85},
		{Name: "IKEA", CategoryID: "shopping", Regex: `\bIKEA\b`, Confidence: 0.95},
		{Name: "Argos", CategoryID: "shopping", Regex: `\bARGOS\b`, Confidence: 0.95},
		{Name: "John Lewis", CategoryID: "shopping", Regex: `\bJOHN\s*LEWIS\b`, Confidence: 0.95},
		{Name: "Wildberries", CategoryID: "shopping", Regex: `\bWILDBERRIES\b|\bWB\s*RU\b`, Confidence: 0.95},
		{Name: "Ozon", CategoryID: "shopping", Regex: `\bOZON\b`, Confidence: 0.95},
		{Name: "Yandex Market", CategoryID: "shopping", Regex: `(YANDEX|ЯНДЕКС)\s*(MARKET|МАРКЕТ)`, Confidence: 0.95},
		{Name: "Kaspi Shop", CategoryID: "shopping", Regex: `\bKASPI\s*(SHOP|MAGAZIN)\b`, Confidence: 0.9},
		{Name: "AliExpress", CategoryID: "shopping", Regex: `\bALIEXPRESS\b`, Confidence: 0.95},
		{Name: "H&M", CategoryID: "shopping", Regex: `\bH\s*&?\s*M\b`, Confidence: 0.9},
		{Name: "Zara", CategoryID: "shopping", Regex: `\bZARA\b`, Confidence: 0.95},
		{Name: "Uniqlo", CategoryID: "shopping", Regex: `\bUNIQLO\b`, Confidence: 0.95},

		// Healthcare
		{Name: "CVS Pharmacy", CategoryID: "healthcare", Regex: `\bCVS\b`, Confidence: 0.9},
		{Name: "Walgreens", CategoryID: "healthcare", Regex: `\bWALGREENS\b`, Confidence: 0.95},
		{Name: "Boots", CategoryID: "healthcare", Regex: `\bBOOTS\b`, Confidence: 0.85},
		{Name: "Generic pharmacy", CategoryID: "healthcare", Regex: `\b(PHARMACY|DRUGSTORE)\b|АПТЕКА`, Confidence: 0.9},
		{Name: "Dental", CategoryID: "healthcare", Regex: `\b(DENTAL|DENTIST)\b|СТОМАТОЛОГ`, Confidence: 0.9},
		{Name: "Clinic", CategoryID: "healthcare", Regex: `\b(CLINIC|MEDICAL\s*CENTER)\b|КЛИНИКА`, Confidence: 0.85},
		{Name: "Optician", CategoryID: "healthcare", Regex: `\b(OPTICIAN|SPECSAVERS|VISION\s*EXPRESS)\b|(^|\s)ОПТИКА(\s|$)`, Confidence: 0.9},

		// Transfers and finance
		{Name: "PayPal transfer", CategoryID: "transfers", Regex: `\bPAYPAL\b`, Confidence: 0.85},
		{Name: "Venmo", CategoryID: "transfers", Regex: `\bVENMO\b`, Confidence: 0.9},
		{Name: "Zelle", CategoryID: "transfers", Regex: `\bZELLE\b`, Confidence: 0.9},
		{Name: "Wise", CategoryID: "transfers", Regex: `\bWISE\b|\bTRANSFERWISE\b`, Confidence: 0.9},
		{Name: "Revolut", CategoryID: "transfers", Regex: `\bREVOLUT\b`, Confidence: 0.9},
		{Name: "Kaspi transfer", CategoryID: "transfers", Regex: `\bKASPI\s*(PEREVOD|TRANSFER)\b|\bKASPI\s*ПЕРЕВОД`, Confidence: 0.95},
		{Name: "Sber transfer", CategoryID: "transfers", Regex: `(SBERBANK|СБЕРБАНК).*(PEREVOD|ПЕРЕВОД)`, Confidence: 0.9},
		{Name: "Wire transfer", CategoryID: "transfers", Regex: `\b(WIRE\s*(IN|OUT|TRANSFER)|SWIFT)\b`, Confidence: 0.9},

		// Travel
		{Name: "Airbnb", CategoryID: "travel", Regex: `\bAIRBNB\b`, Confidence: 0.95},
		{Name: "Booking.com", CategoryID: "travel", Regex: `\bBOOKING\s*\.?\s*COM\b`, Confidence: 0.95},
		{Name: "Expedia", CategoryID: "travel", Regex: `\bEXPEDIA\b`, Confidence: 0.95},
		{Name: "Ryanair", CategoryID: "travel", Regex: `\bRYANAIR\b`, Confidence: 0.95},
		{Name: "EasyJet", CategoryID: "travel", Regex: `\bEASYJET\b`, Confidence: 0.95},
		{Name: "Aeroflot", CategoryID: "travel", Regex: `\bAEROFLOT\b|АЭРОФЛОТ`, Confidence: 0.95},
		{Name: "Air Astana", CategoryID: "travel", Regex: `\bAIR\s*ASTANA\b`, Confidence: 0.95},
		{Name: "Generic airline", CategoryID: "travel", Regex: `\b(AIRLINES?|AIRWAYS)\b`, Confidence: 0.85},
		{Name: "Hotel", CategoryID: "travel", Regex: `\b(HOTEL|HILTON|MARRIOTT)\b|ГОСТИНИЦА`, Confidence: 0.85},
	}
}
