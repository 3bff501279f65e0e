package demo

import "safespace/internal/models"

var (
	postTitles = []string{
		"Feeling lost and need support",
		"My journey to healing - 6 months later",
		"Advice on rebuilding trust",
		"Therapy resources that changed my life",
		"Having a really hard day today",
	}

	postContents = []string{
		"I've been feeling really lost lately. The trauma from what happened is affecting my daily life and I don't know how to move forward. Has anyone else felt this way?",
		"It's been 6 months since I started my healing journey. I wanted to share that it does get better, even though some days are still really hard. Therapy has been a lifesaver.",
		"I'm trying to rebuild trust in relationships after what happened. Does anyone have advice on how to start trusting people again? I feel like I'm always waiting for the other shoe to drop.",
		"I found this amazing therapist who specializes in trauma. She's helped me so much with EMDR therapy. If anyone is looking for resources, I can share more details.",
		"Today has been one of those days where everything feels heavy. The flashbacks are really bad and I just needed to reach out to people who understand what this feels like.",
	}

	postCategories = []models.Category{
		models.CategorySupport,
		models.CategoryShare,
		models.CategoryAdvice,
		models.CategoryHealing,
		models.CategoryResources,
	}

	commentTexts = []string{
		"You're not alone. I felt exactly the same way for months after my experience. It does get better, even though it doesn't feel like it right now.",
		"Thank you for being brave enough to share this. Your story helps others feel less alone. You're doing amazing.",
		"I'm so sorry you're going through this. I've been there and I know how overwhelming it can feel. You're stronger than you know.",
		"This community is here for you. We believe you and we support you. You don't have to go through this alone.",
		"Sending you so much love and strength. The healing journey isn't linear, but you're making progress even on the hard days.",
		"I found that journaling really helped me process my feelings. Maybe that could help you too?",
		"You're not broken. What happened to you doesn't define you. You're still the same amazing person.",
		"Have you considered therapy? I found a trauma specialist who really helped me work through everything.",
		"I'm here if you need to talk. Sometimes just having someone listen makes all the difference.",
		"You're doing the right thing by reaching out. That takes courage and strength.",
	}

	messageTexts = []string{
		"Hi everyone, I'm new here and feeling a bit nervous. Thank you for creating this safe space.",
		"Welcome! You're absolutely safe here. We're all here to support each other.",
		"Thank you for the warm welcome. It means so much to feel understood.",
		"We're all on this healing journey together. You're not alone.",
		"Has anyone found any good therapists in the NYC area? I'm looking for someone who specializes in trauma.",
		"I found this book really helpful: \"The Body Keeps the Score\" by van der Kolk. It helped me understand trauma better.",
		"Thank you for sharing that! I've been looking for resources to help me understand what I'm going through.",
		"You're not alone in this journey. We're all here for each other.",
		"Sending love and strength to everyone here. This community has been a lifeline for me.",
		"This community has been so helpful for me. I finally feel like I'm not crazy for feeling the way I do.",
		"Has anyone tried EMDR therapy? I've heard it can be really effective for trauma.",
		"I've been doing EMDR for 3 months now and it's been life-changing. Highly recommend finding a qualified therapist.",
		"Thank you for sharing your experience. It gives me hope that healing is possible.",
		"I'm having a really hard day today. The flashbacks are really bad.",
		"I'm so sorry you're going through that. Flashbacks are so difficult. Have you tried grounding techniques?",
		"Yes, I use the 5-4-3-2-1 technique. It helps me stay present when I'm feeling overwhelmed.",
		"Thank you for that tip! I'll definitely try it next time.",
	}

	feedTexts = []string{
		"Thank you for sharing that. It takes courage to open up.",
		"You're not alone in feeling this way. Many of us have been there.",
		"Sending you strength and love. You're doing amazing.",
		"This community is here for you. We believe you and support you.",
		"Thank you for being so brave and sharing your story.",
		"You're doing great, even if it doesn't feel like it right now.",
		"We believe you. Your experience is valid and real.",
		"You're stronger than you know. Healing takes time.",
		"I'm here if you need to talk. Sometimes just being heard helps.",
		"You're not broken. What happened to you doesn't define you.",
		"Have you tried any grounding techniques? They help me when I'm overwhelmed.",
		"Remember to be gentle with yourself. Healing isn't linear.",
	}

	roomDefs = []models.ChatRoom{
		{ID: 1, Name: "General Support & Discussion", Description: "A safe space for general support, questions, and conversation", Category: "general", ParticipantCount: 23, Active: true},
		{ID: 2, Name: "Healing Journey Support", Description: "Share your healing journey, progress, and support others on their path", Category: "healing", ParticipantCount: 17, Active: true},
		{ID: 3, Name: "Crisis & Immediate Support", Description: "Immediate support for those in crisis or having a difficult time", Category: "crisis", ParticipantCount: 8, Active: true},
		{ID: 4, Name: "Resources & Professional Help", Description: "Share helpful resources, therapist recommendations, and professional advice", Category: "resources", ParticipantCount: 14, Active: true},
		{ID: 5, Name: "New Members Welcome", Description: "Welcome new members and help them feel comfortable in the community", Category: "welcome", ParticipantCount: 31, Active: true},
	}

	resourceDefs = []models.Resource{
		{ID: 1, Title: "Understanding Trauma", Description: "Educational resources about trauma and its effects", URL: "https://www.rainn.org/articles/trauma", Category: "education"},
		{ID: 2, Title: "Self-Care Techniques", Description: "Practical self-care strategies for healing", URL: "https://www.rainn.org/self-care", Category: "self-care"},
		{ID: 3, Title: "Legal Resources", Description: "Information about legal rights and options", URL: "https://www.rainn.org/legal-resources", Category: "legal"},
		{ID: 4, Title: "Therapy Directory", Description: "Find qualified therapists in your area", URL: "https://www.psychologytoday.com/us/therapists", Category: "therapy"},
	}
)
