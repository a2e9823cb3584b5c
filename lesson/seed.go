package lesson

// initialCurriculum returns the lessons created on first boot. Breakfast,
// Holiday, and Leap of Faith are available at launch; Lunch, Dinner, and
// Supper series arrive as content is authored.
func initialCurriculum() []Lesson {
	allEditions := StringList{"adult", "youth", "instructor"}
	return []Lesson{
		{
			ID:            "leap-of-faith-sample",
			Title:         "Leap of Faith - My Brother's Keeper & Consistency Pays",
			Description:   "A free sample lesson exploring faith through the examples of Abel and Enoch.",
			Content:       "# My Brother's Keeper & Consistency Pays\n\n**Key Verse:** \"Now faith is the substance of things hoped for, the evidence of things not seen.\" (Heb 11:1)\n\n**Background Scriptures:** Gen 4:1-11; Gen 5:21-24; Heb 11\n\n## My Brother's Keeper (Gen 4:1-11)\n\nAbel and Cain's story teaches us about faithful worship and responsibility to our brothers and sisters in Christ.\n\n## Consistency Pays (Gen 5:21-24)\n\nEnoch walked with God for 300 years! His consistency was so pleasing to God that he was translated to heaven without seeing death.\n\n## Conclusion\n\nAbel and Enoch showed us that being faithful and serving God consistently doesn't go unrewarded.",
			Series:        "leap_of_faith",
			LessonNumber:  1,
			EditionAccess: allEditions,
			TierRequired:  TierFree,
			Author:        "Ministry Team",
			DiscussionPrompts: StringList{
				"What was Abel's occupation?",
				"Why was Cain's offering not accepted?",
				"How come you think Abel made the list in Heb 11?",
			},
		},
		{
			ID:            "breakfast-1-esther",
			Title:         "Esther - Courage in Crisis",
			Description:   "Learn how Esther used prayer and fasting to approach an impossible situation with faith and courage.",
			Content:       "# Esther - Courage in Crisis\n\n## Foundation of Prayer\n\nEsther's story teaches us that prayer is the first resort, not the last. When faced with impossible odds, she didn't panic - she prayed and fasted.\n\n## Key Lessons:\n\n1. **God uses people from all backgrounds** - Esther's heritage didn't disqualify her\n2. **Community prayer matters** - She asked others to join her in fasting\n3. **Courage transcends culture** - Faith gives boldness regardless of background",
			Series:        "breakfast",
			LessonNumber:  1,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Dee",
		},
		{
			ID:            "holiday-cradle",
			Title:         "The Cradle: Christ's Birth",
			Description:   "Celebrate the miraculous birth of our Savior and what it means for all nations.",
			Content:       "# The Cradle: Christ's Birth\n\n**Key Verse:** \"For unto you is born this day in the city of David a Saviour, which is Christ the Lord.\" (Luke 2:11)\n\n## The 4 C's of Christianity: The Cradle\n\nThe Cradle represents the humble beginning of our Savior's earthly journey. Born in a manger, Jesus came for ALL people - every nation, tribe, and tongue.",
			Series:        "holiday",
			LessonNumber:  1,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Dee",
		},
		{
			ID:            "holiday-cross",
			Title:         "The Cross: Sacrifice and Victory",
			Description:   "Understand the power of Christ's sacrifice and the victory of His resurrection.",
			Content:       "# The Cross: Sacrifice and Victory\n\n**Key Verse:** \"But he was wounded for our transgressions, he was bruised for our iniquities.\" (Isaiah 53:5)\n\n## The 4 C's of Christianity: The Cross\n\nThe Cross represents the ultimate sacrifice of love. Jesus died for all humanity - not just one nation, but for every race, culture, and background.\n\n## Victory Through Death\n\nThe resurrection proves that death has been defeated.",
			Series:        "holiday",
			LessonNumber:  2,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Rose",
		},
		{
			ID:            "holiday-covenant",
			Title:         "The Covenant: God's Eternal Promise",
			Description:   "Explore God's covenant relationship with His people throughout history.",
			Content:       "# The Covenant: God's Eternal Promise\n\n**Key Verse:** \"And I will establish my covenant between me and thee and thy seed after thee in their generations for an everlasting covenant.\" (Genesis 17:7)\n\n## The 4 C's of Christianity: The Covenant\n\nFrom the beginning, God has been a covenant-making God. He established covenants with Noah, Abraham, Moses, David, and ultimately through Jesus Christ - the New Covenant for all who believe.",
			Series:        "holiday",
			LessonNumber:  3,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Ministry Team",
		},
		{
			ID:            "holiday-comforter",
			Title:         "The Comforter: The Holy Spirit",
			Description:   "Discover the role of the Holy Spirit as our Comforter, Guide, and Power.",
			Content:       "# The Comforter: The Holy Spirit\n\n**Key Verse:** \"But the Comforter, which is the Holy Ghost, whom the Father will send in my name, he shall teach you all things.\" (John 14:26)\n\n## The 4 C's of Christianity: The Comforter\n\nJesus promised that He would not leave us alone. He sent the Holy Spirit - the Comforter - to be with us always, to guide us, teach us, and empower us for service.",
			Series:        "holiday",
			LessonNumber:  4,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Joel",
		},
		{
			ID:            "bonus-names-of-god",
			Title:         "Names of God",
			Description:   "Explore the powerful names of God and what they reveal about His character.",
			Content:       "# Names of God\n\n## Jehovah Jireh - The Lord Will Provide\n\nGod is our provider in every season of life.\n\n## El Shaddai - God Almighty\n\nNo challenge is too great for our God.\n\n## Jehovah Shalom - The Lord is Peace\n\nIn the midst of chaos, God brings peace.",
			Series:        "bonus",
			LessonNumber:  1,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Ministry Team",
		},
		{
			ID:            "bonus-times-seasons",
			Title:         "Times & Seasons",
			Description:   "Understanding God's timing in our lives and the seasons of faith.",
			Content:       "# Times & Seasons\n\n**Key Verse:** \"To everything there is a season, and a time to every purpose under the heaven.\" (Ecclesiastes 3:1)\n\n## Seasons of Life\n\nJust as nature has seasons, so does our spiritual walk. There are seasons of planting, growing, harvesting, and resting.\n\n## God's Perfect Timing\n\nGod's timing is never early and never late.",
			Series:        "bonus",
			LessonNumber:  2,
			EditionAccess: allEditions,
			TierRequired:  TierSubscription,
			Author:        "Temia",
		},
	}
}
